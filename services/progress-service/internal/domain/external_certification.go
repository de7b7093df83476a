package domain

import "time"

const (
	CertificationPending  = "pending"
	CertificationApproved = "approved"
	CertificationRejected = "rejected"

	// Старые записи хранят статус в форме "approve"
	certificationApprovedLegacy = "approve"
)

// ExternalCertification - внешнее обучение, которое пользователь загрузил сам.
// В compliance идут только одобренные записи.
type ExternalCertification struct {
	ID                  uint
	CourseName          string
	Category            string
	Status              string
	DateOfCompletion    time.Time
	Hours               int
	CertificateProvider string
	FileID              string
	UploadedByID        uint
	ApprovedBy          *uint
	ApprovedDate        *time.Time
	CreatedAt           time.Time
}

func (c *ExternalCertification) IsApproved() bool {
	return IsApprovedStatus(c.Status)
}

func IsApprovedStatus(status string) bool {
	return status == CertificationApproved || status == certificationApprovedLegacy
}

// ApprovedStatuses - значения статуса, которые считаются одобренными.
func ApprovedStatuses() []string {
	return []string{CertificationApproved, certificationApprovedLegacy}
}

func ValidCategory(category string) bool {
	return category == CategoryTechnical || category == CategoryNonTechnical
}
