package payroll

type RecordResponse struct {
	Employee   string         `json:"employee"`
	Competency string         `json:"competency"`
	Data       RecordSnapshot `json:"data"`
	SourceLine int            `json:"source_line"`
}
