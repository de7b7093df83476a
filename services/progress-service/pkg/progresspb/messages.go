package progresspb

import "time"

// Actor - пользователь, от имени которого шлюз делает вызов.
type Actor struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
}

type MarkDoneRequest struct {
	Actor        Actor `json:"actor"`
	ContentID    uint  `json:"content_id"`
	EnrollmentID uint  `json:"enrollment_id"`
}

type MarkDoneResponse struct {
	EnrollmentID      uint    `json:"enrollment_id"`
	Status            string  `json:"status"`
	PendingQuizzes    int     `json:"pending_quizzes"`
	RemainingContents int     `json:"remaining_contents"`
	CompletedHours    int     `json:"completed_hours"`
	ExpectedHours     int     `json:"expected_hours"`
	Percentage        float64 `json:"percentage"`
	CertificateIssued bool    `json:"certificate_issued"`
	Message           string  `json:"message"`
}

type EnrollmentRequest struct {
	Actor        Actor `json:"actor"`
	EnrollmentID uint  `json:"enrollment_id"`
}

type CompletionState struct {
	EnrollmentID         uint    `json:"enrollment_id"`
	CompletedHours       int     `json:"completed_hours"`
	ExpectedHours        int     `json:"expected_hours"`
	Percentage           float64 `json:"percentage"`
	PendingQuestionCount int     `json:"pending_question_count"`
	Status               string  `json:"status"`
}

type CheckCompletionResponse struct {
	CompletionState
	CertificateIssued bool `json:"certificate_issued"`
}

type EnrollmentDetail struct {
	CompletionState
	UserID              uint      `json:"user_id"`
	CourseID            uint      `json:"course_id"`
	EnrollDate          time.Time `json:"enroll_date"`
	DueDate             time.Time `json:"due_date"`
	Year                int       `json:"year"`
	RemainingContents   int       `json:"remaining_contents"`
	PendingChapterCount int       `json:"pending_chapter_count"`
}

// UserRequest - все чтения "по пользователю": записи, compliance, дашборд, сертификаты.
type UserRequest struct {
	Actor  Actor `json:"actor"`
	UserID uint  `json:"user_id"`
}

type ListEnrollmentsResponse struct {
	Enrollments []EnrollmentDetail `json:"enrollments"`
}

type CompletedContentRequest struct {
	Actor     Actor `json:"actor"`
	UserID    uint  `json:"user_id"`
	ChapterID uint  `json:"chapter_id"`
}

type CompletedContentResponse struct {
	ContentIDs []uint `json:"content_ids"`
}

type EnrollRequest struct {
	Actor    Actor  `json:"actor"`
	CourseID uint   `json:"course_id"`
	UserIDs  []uint `json:"user_ids"`
}

type EnrollResponse struct {
	CourseID uint   `json:"course_id"`
	Enrolled []uint `json:"user_ids"`
	Skipped  []uint `json:"skipped_user_ids"`
	Message  string `json:"message"`
}

type SubmitAnswerRequest struct {
	Actor          Actor  `json:"actor"`
	QuestionID     uint   `json:"question_id"`
	EnrollmentID   uint   `json:"enrollment_id"`
	SelectedOption string `json:"selected_option"`
	Source         string `json:"source"`
}

type QuizAttempt struct {
	ID              uint      `json:"id"`
	QuestionID      uint      `json:"question_id"`
	EnrollmentID    uint      `json:"enrollment_id"`
	AttemptNo       int       `json:"attempt_no"`
	CorrectAnswer   bool      `json:"correct_answer"`
	Source          string    `json:"source"`
	AttemptDatetime time.Time `json:"attempt_datetime"`
}

type ListAttemptsRequest struct {
	Actor        Actor `json:"actor"`
	QuestionID   uint  `json:"question_id"`
	EnrollmentID uint  `json:"enrollment_id"`
}

type ListAttemptsResponse struct {
	Attempts []QuizAttempt `json:"attempts"`
}

type ComplianceSnapshot struct {
	UserID                    uint `json:"user_id"`
	TechnicalHours            int  `json:"technical_hours"`
	NonTechnicalHours         int  `json:"non_technical_hours"`
	Compliant                 bool `json:"compliant"`
	TotalTechEnrolledHours    int  `json:"total_tech_enrolled_hours"`
	TotalNonTechEnrolledHours int  `json:"total_non_tech_enrolled_hours"`
	TechnicalTarget           int  `json:"technical_target"`
	NonTechnicalTarget        int  `json:"non_technical_target"`
}

type DashboardStats struct {
	EnrolledCount      int     `json:"enrolled_count"`
	CompletedCount     int     `json:"completed_course_count"`
	ActiveCount        int     `json:"active_course_count"`
	PendingCount       int     `json:"pending_course_count"`
	CertificatesCount  int64   `json:"certificates_count"`
	MyProgress         float64 `json:"my_progress"`
	TotalLearningHours int     `json:"total_learning_hours"`
}

type Certificate struct {
	ID                uint      `json:"id"`
	UserID            uint      `json:"user_id"`
	CourseID          uint      `json:"course_id"`
	CertificateNumber string    `json:"certificate_number"`
	IssueDate         time.Time `json:"issue_date"`
}

type ListCertificatesResponse struct {
	Certificates []Certificate `json:"certificates"`
}

type SubmitCertificationRequest struct {
	Actor               Actor     `json:"actor"`
	CourseName          string    `json:"course_name"`
	Category            string    `json:"category"`
	DateOfCompletion    time.Time `json:"date_of_completion"`
	Hours               int       `json:"hours"`
	CertificateProvider string    `json:"certificate_provider"`
	FileID              string    `json:"file_id"`
}

type Certification struct {
	ID                  uint       `json:"id"`
	CourseName          string     `json:"course_name"`
	Category            string     `json:"category"`
	Status              string     `json:"status"`
	DateOfCompletion    time.Time  `json:"date_of_completion"`
	Hours               int        `json:"hours"`
	CertificateProvider string     `json:"certificate_provider"`
	FileID              string     `json:"file_id,omitempty"`
	UploadedByID        uint       `json:"uploaded_by_id"`
	ApprovedBy          *uint      `json:"approved_by,omitempty"`
	ApprovedDate        *time.Time `json:"approved_date,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
}

type ListCertificationsResponse struct {
	Certifications []Certification `json:"certifications"`
}

type ReviewCertificationRequest struct {
	Actor           Actor `json:"actor"`
	CertificationID uint  `json:"certification_id"`
}

type CourseStatsRequest struct {
	Actor    Actor `json:"actor"`
	CourseID uint  `json:"course_id"`
}

type CourseStats struct {
	CourseID               uint  `json:"course_id"`
	EnrolledStudentsCount  int64 `json:"enrolled_students_count"`
	CompletedStudentsCount int64 `json:"completed_students_count"`
}

type LearningPath struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	Entity        string `json:"entity"`
	CourseIDs     []uint `json:"course_ids"`
	ExpectedHours int    `json:"expected_time_to_complete"`
}

type CreateLearningPathRequest struct {
	Actor     Actor  `json:"actor"`
	Name      string `json:"name"`
	Entity    string `json:"entity"`
	CourseIDs []uint `json:"course_ids"`
}

type LearningPathRequest struct {
	Actor          Actor `json:"actor"`
	LearningPathID uint  `json:"learning_path_id"`
}

type ListLearningPathsRequest struct {
	Actor Actor `json:"actor"`
}

type ListLearningPathsResponse struct {
	LearningPaths []LearningPath `json:"learning_paths"`
}

// EnrollLearningPathRequest: нулевой DueDate - срок по умолчанию.
type EnrollLearningPathRequest struct {
	Actor          Actor     `json:"actor"`
	LearningPathID uint      `json:"learning_path_id"`
	UserIDs        []uint    `json:"user_ids"`
	DueDate        time.Time `json:"due_date"`
}

type EnrollLearningPathResponse struct {
	LearningPathID    uint   `json:"learning_path_id"`
	Enrolled          []uint `json:"user_ids"`
	Updated           []uint `json:"updated_user_ids"`
	CourseEnrollments int    `json:"course_enrollments"`
	Message           string `json:"message"`
}

type LearningPathProgressRequest struct {
	Actor          Actor `json:"actor"`
	UserID         uint  `json:"user_id"`
	LearningPathID uint  `json:"learning_path_id"`
}

type CourseProgress struct {
	CompletionState
	CourseID uint `json:"course_id"`
	Enrolled bool `json:"enrolled"`
}

type LearningPathProgress struct {
	LearningPathID       uint             `json:"learning_path_id"`
	Name                 string           `json:"name"`
	UserID               uint             `json:"user_id"`
	EnrollDate           time.Time        `json:"enroll_date"`
	DueDate              time.Time        `json:"due_date"`
	Year                 int              `json:"year"`
	Status               string           `json:"status"`
	CompletedHours       int              `json:"completed_hours"`
	ExpectedHours        int              `json:"expected_hours"`
	CompletionPercentage float64          `json:"completion_percentage"`
	CompletedCourses     int              `json:"completed_courses"`
	TotalCourses         int              `json:"total_courses"`
	Courses              []CourseProgress `json:"courses"`
}

type ListLearningPathProgressResponse struct {
	LearningPaths []LearningPathProgress `json:"learning_paths"`
}
