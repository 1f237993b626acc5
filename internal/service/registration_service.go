package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/unifylabs/unify-backend/internal/model"
	"github.com/unifylabs/unify-backend/internal/repository"
)

var (
	// ErrUnknownSection is returned when an enroll request names a
	// (course, section) pair with no slots in the term.
	ErrUnknownSection = errors.New("unknown course section")
	// ErrAlreadyEnrolled is returned when the student already holds an
	// active enrollment in one of the selected courses for the term.
	ErrAlreadyEnrolled = errors.New("already enrolled")
)

// RegistrationService turns a winning optimizer selection into
// enrollment records. The optimizer itself never persists anything;
// enrolling is an explicit second step the student confirms.
type RegistrationService struct {
	courseRepo     *repository.CourseRepository
	slotRepo       *repository.SlotRepository
	enrollmentRepo *repository.EnrollmentRepository
	notifications  *NotificationService
	log            zerolog.Logger
}

func NewRegistrationService(
	courseRepo *repository.CourseRepository,
	slotRepo *repository.SlotRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	notifications *NotificationService,
	log zerolog.Logger,
) *RegistrationService {
	return &RegistrationService{
		courseRepo:     courseRepo,
		slotRepo:       slotRepo,
		enrollmentRepo: enrollmentRepo,
		notifications:  notifications,
		log:            log.With().Str("component", "registration_service").Logger(),
	}
}

// Enroll persists one section per selected course as active enrollments.
// Every selection must reference an offered section, and none of the
// courses may already hold an active enrollment for the term.
func (s *RegistrationService) Enroll(ctx context.Context, studentID, userID int, req model.EnrollRequest) ([]model.Enrollment, error) {
	active, err := s.enrollmentRepo.ActiveCourseIDs(ctx, studentID, req.AcademicYear, req.Term)
	if err != nil {
		return nil, fmt.Errorf("load active enrollments: %w", err)
	}

	enrollments := make([]model.Enrollment, 0, len(req.Selections))
	seen := map[string]bool{}
	for _, sel := range req.Selections {
		code := strings.ToUpper(strings.TrimSpace(sel.CourseCode))
		if seen[code] {
			continue
		}
		seen[code] = true

		course, err := s.courseRepo.GetByCode(ctx, code)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s section %d", ErrUnknownSection, code, sel.Section)
		}
		if err != nil {
			return nil, err
		}

		exists, err := s.slotRepo.SectionExists(ctx, code, sel.Section, req.AcademicYear, req.Term)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, fmt.Errorf("%w: %s section %d", ErrUnknownSection, code, sel.Section)
		}

		if active[course.ID] {
			return nil, fmt.Errorf("%w: %s", ErrAlreadyEnrolled, code)
		}

		enrollments = append(enrollments, model.Enrollment{
			StudentID:    studentID,
			CourseID:     course.ID,
			CourseCode:   course.Code,
			CourseName:   course.Name,
			Credits:      course.Credits,
			Section:      sel.Section,
			Status:       model.EnrollmentEnrolled,
			AcademicYear: req.AcademicYear,
			Term:         req.Term,
		})
	}

	if err := s.enrollmentRepo.CreateBatch(ctx, enrollments); err != nil {
		return nil, fmt.Errorf("persist enrollments: %w", err)
	}

	codes := make([]string, len(enrollments))
	for i, e := range enrollments {
		codes[i] = e.CourseCode
	}
	if err := s.notifications.Enqueue(ctx, model.Notification{
		UserID:   userID,
		Title:    "Registration confirmed",
		Body:     fmt.Sprintf("You are enrolled in %s for %s %d.", strings.Join(codes, ", "), req.Term, req.AcademicYear),
		Kind:     model.NotificationSystem,
		Priority: model.PriorityMedium,
	}); err != nil {
		// Enrollment already committed; a lost notification is not
		// worth failing the request over.
		s.log.Warn().Err(err).Int("user_id", userID).Msg("enrollment notification enqueue failed")
	}

	return enrollments, nil
}

// ListEnrollments returns the student's enrollments, newest first.
func (s *RegistrationService) ListEnrollments(ctx context.Context, studentID int) ([]model.Enrollment, error) {
	return s.enrollmentRepo.ListByStudent(ctx, studentID)
}

// DropEnrollment marks an active enrollment as dropped.
func (s *RegistrationService) DropEnrollment(ctx context.Context, studentID, enrollmentID int) error {
	return s.enrollmentRepo.Drop(ctx, studentID, enrollmentID)
}
