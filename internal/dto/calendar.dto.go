package dto

// CalendarDayDTO descreve um dia da agenda como a tela de reservas o exibe.
type CalendarDayDTO struct {
	Date        string   `json:"date"`
	Weekday     string   `json:"weekday"`
	Open        bool     `json:"open"`
	Sunday      bool     `json:"sunday"`
	Holiday     string   `json:"holiday,omitempty"`
	Reason      string   `json:"reason,omitempty"`
	ClosingTime string   `json:"closing_time,omitempty"`
	Slots       []string `json:"slots"`
}
