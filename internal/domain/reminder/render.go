package reminder

import (
	"strconv"
	"strings"
)

// Vars são os valores dos placeholders das mensagens.
type Vars struct {
	Client  string
	Service string
	Days    int
	Visits  int
}

// Render substitui todas as ocorrências de {cliente}, {servico}, {dias} e
// {visitas}. {nome} é aceito como sinônimo de {cliente}.
func Render(template string, v Vars) string {
	return strings.NewReplacer(
		"{cliente}", v.Client,
		"{nome}", v.Client,
		"{servico}", v.Service,
		"{dias}", strconv.Itoa(v.Days),
		"{visitas}", strconv.Itoa(v.Visits),
	).Replace(template)
}
