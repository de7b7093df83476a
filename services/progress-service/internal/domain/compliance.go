package domain

// ComplianceTargets - пороги часов, задаются конфигом.
type ComplianceTargets struct {
	Technical    int `json:"technical"`
	NonTechnical int `json:"non_technical"`
}

type ComplianceSnapshot struct {
	UserID                    uint              `json:"user_id"`
	TechnicalHours            int               `json:"technical_hours"`
	NonTechnicalHours         int               `json:"non_technical_hours"`
	Compliant                 bool              `json:"compliant"`
	TotalTechEnrolledHours    int               `json:"total_tech_enrolled_hours"`
	TotalNonTechEnrolledHours int               `json:"total_non_tech_enrolled_hours"`
	Targets                   ComplianceTargets `json:"targets"`
}

func (t ComplianceTargets) IsCompliant(technical, nonTechnical int) bool {
	return technical >= t.Technical && nonTechnical >= t.NonTechnical
}
