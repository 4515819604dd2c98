package employee

type EmployeeResponse struct {
	FullName string `json:"full_name"`
}

type CompetenciesResponse struct {
	Employee     string   `json:"employee"`
	Competencies []string `json:"competencies"`
}
