package attendance

import (
	"context"
	"fmt"

	domain "github.com/cliniqa/clinic-attendance/internal/domain/attendance"
	"github.com/cliniqa/clinic-attendance/internal/dto"
	"github.com/cliniqa/clinic-attendance/internal/httperr"
)

type ListRecordsByMonth struct {
	repo domain.Repository
}

func NewListRecordsByMonth(
	repo domain.Repository,
) *ListRecordsByMonth {
	return &ListRecordsByMonth{
		repo: repo,
	}
}

func (uc *ListRecordsByMonth) Execute(
	ctx context.Context,
	clinicID uint,
	year int,
	month int,
) ([]dto.AttendanceListDTO, error) {

	if year < 2000 || year > 2100 || month < 1 || month > 12 {
		return nil, httperr.ErrBusiness("invalid_month")
	}

	// Work dates are "2006-01-02" strings, so month ranges compare
	// lexicographically without touching the clinic timezone.
	from := fmt.Sprintf("%04d-%02d-01", year, month)
	nextY, nextM := year, month+1
	if nextM > 12 {
		nextY, nextM = year+1, 1
	}
	to := fmt.Sprintf("%04d-%02d-01", nextY, nextM)

	rows, err := uc.repo.ListRecordsForPeriod(ctx, clinicID, from, to)
	if err != nil {
		return nil, err
	}

	return toListDTOs(rows), nil
}
