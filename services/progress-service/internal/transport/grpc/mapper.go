package grpc_server

import (
	"github.com/waste3d/learnplatform-api/services/progress-service/internal/application/usecase"
	"github.com/waste3d/learnplatform-api/services/progress-service/internal/domain"
	"github.com/waste3d/learnplatform-api/services/progress-service/pkg/progresspb"
)

func stateToPB(s domain.CompletionState) progresspb.CompletionState {
	return progresspb.CompletionState{
		EnrollmentID:         s.EnrollmentID,
		CompletedHours:       s.CompletedHours,
		ExpectedHours:        s.ExpectedHours,
		Percentage:           s.Percentage,
		PendingQuestionCount: s.PendingQuestionCount,
		Status:               s.Status,
	}
}

func detailToPB(d *usecase.EnrollmentDetail) progresspb.EnrollmentDetail {
	return progresspb.EnrollmentDetail{
		CompletionState:     stateToPB(d.CompletionState),
		UserID:              d.UserID,
		CourseID:            d.CourseID,
		EnrollDate:          d.EnrollDate,
		DueDate:             d.DueDate,
		Year:                d.Year,
		RemainingContents:   d.RemainingContents,
		PendingChapterCount: d.PendingChapterCount,
	}
}

func attemptToPB(q domain.QuizCompletion) progresspb.QuizAttempt {
	return progresspb.QuizAttempt{
		ID:              q.ID,
		QuestionID:      q.QuestionID,
		EnrollmentID:    q.EnrollmentID,
		AttemptNo:       q.AttemptNo,
		CorrectAnswer:   q.CorrectAnswer,
		Source:          q.Source,
		AttemptDatetime: q.AttemptDatetime,
	}
}

func certificationToPB(c *domain.ExternalCertification) progresspb.Certification {
	return progresspb.Certification{
		ID:                  c.ID,
		CourseName:          c.CourseName,
		Category:            c.Category,
		Status:              c.Status,
		DateOfCompletion:    c.DateOfCompletion,
		Hours:               c.Hours,
		CertificateProvider: c.CertificateProvider,
		FileID:              c.FileID,
		UploadedByID:        c.UploadedByID,
		ApprovedBy:          c.ApprovedBy,
		ApprovedDate:        c.ApprovedDate,
		CreatedAt:           c.CreatedAt,
	}
}

func pathToPB(p *usecase.LearningPathView) progresspb.LearningPath {
	return progresspb.LearningPath{
		ID:            p.ID,
		Name:          p.Name,
		Entity:        p.Entity,
		CourseIDs:     p.CourseIDs,
		ExpectedHours: p.ExpectedHours,
	}
}

func pathProgressToPB(pp *usecase.PathProgress) progresspb.LearningPathProgress {
	out := progresspb.LearningPathProgress{
		LearningPathID:       pp.LearningPathID,
		Name:                 pp.Name,
		UserID:               pp.UserID,
		EnrollDate:           pp.EnrollDate,
		DueDate:              pp.DueDate,
		Year:                 pp.Year,
		Status:               pp.Status,
		CompletedHours:       pp.CompletedHours,
		ExpectedHours:        pp.ExpectedHours,
		CompletionPercentage: pp.Percentage,
		CompletedCourses:     pp.CompletedCourses,
		TotalCourses:         pp.TotalCourses,
		Courses:              make([]progresspb.CourseProgress, 0, len(pp.Courses)),
	}
	for _, c := range pp.Courses {
		out.Courses = append(out.Courses, progresspb.CourseProgress{
			CompletionState: stateToPB(c.CompletionState),
			CourseID:        c.CourseID,
			Enrolled:        c.Enrolled,
		})
	}
	return out
}

func pathProgressListToPB(list []*usecase.PathProgress) *progresspb.ListLearningPathProgressResponse {
	resp := &progresspb.ListLearningPathProgressResponse{LearningPaths: make([]progresspb.LearningPathProgress, 0, len(list))}
	for _, pp := range list {
		resp.LearningPaths = append(resp.LearningPaths, pathProgressToPB(pp))
	}
	return resp
}
