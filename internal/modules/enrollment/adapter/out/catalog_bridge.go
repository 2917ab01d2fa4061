package out

import (
	"context"

	catalogdto "learnify/internal/modules/catalog/dto"
	catalogin "learnify/internal/modules/catalog/port/in"
	"learnify/internal/modules/enrollment/domain"
	enrollmentout "learnify/internal/modules/enrollment/port/out"
)

type CatalogBridge struct {
	courses catalogin.CourseUsecase
}

func NewCatalogBridge(courses catalogin.CourseUsecase) enrollmentout.CourseCatalog {
	return &CatalogBridge{courses: courses}
}

func (b *CatalogBridge) CourseTitle(ctx context.Context, courseID string) (string, error) {
	course, err := b.courses.GetCourseByID(ctx, courseID)
	if err != nil {
		return "", err
	}
	return course.Title, nil
}

func (b *CatalogBridge) Enroll(ctx context.Context, courseID string, form domain.Form) error {
	_, err := b.courses.EnrollInCourse(ctx, catalogdto.EnrollInput{
		CourseID: courseID,
		Data: catalogdto.EnrollmentData{
			Personal: catalogdto.PersonalInfo{
				FullName:       form.Personal.FullName,
				Email:          form.Personal.Email,
				Phone:          form.Personal.Phone,
				DateOfBirth:    form.Personal.DateOfBirth,
				DocumentNumber: form.Personal.DocumentNumber,
			},
			Address: catalogdto.Address{
				ZipCode:      form.Address.ZipCode,
				Street:       form.Address.Street,
				Number:       form.Address.Number,
				Complement:   form.Address.Complement,
				Neighborhood: form.Address.Neighborhood,
				City:         form.Address.City,
				State:        form.Address.State,
			},
			Additional: catalogdto.AdditionalInfo{
				EducationLevel:   form.Additional.EducationLevel,
				Occupation:       form.Additional.Occupation,
				ReferralSource:   form.Additional.ReferralSource,
				Goals:            form.Additional.Goals,
				MarketingConsent: form.Additional.MarketingConsent,
			},
		},
	})
	return err
}
