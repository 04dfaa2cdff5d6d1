package models

type RedFlags struct {
	RedFlagsFound bool   `json:"red_flags_found"`
	Summary       string `json:"summary"`
}

type SalaryEstimation struct {
	EstimatedSalaryRange string `json:"estimated_salary_range"`
	Summary              string `json:"summary"`
}

type ConsistencyCheck struct {
	InconsistenciesFound bool   `json:"inconsistencies_found"`
	Summary              string `json:"summary"`
}

type FitScore struct {
	RoleFitScore    int    `json:"role_fit_score"`
	CultureFitScore int    `json:"culture_fit_score"`
	Summary         string `json:"summary"`
}
