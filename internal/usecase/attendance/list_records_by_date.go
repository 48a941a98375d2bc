package attendance

import (
	"context"
	"time"

	domain "github.com/cliniqa/clinic-attendance/internal/domain/attendance"
	"github.com/cliniqa/clinic-attendance/internal/dto"
	"github.com/cliniqa/clinic-attendance/internal/httperr"
	"github.com/cliniqa/clinic-attendance/internal/models"
)

type ListRecordsByDate struct {
	repo domain.Repository
}

func NewListRecordsByDate(
	repo domain.Repository,
) *ListRecordsByDate {
	return &ListRecordsByDate{
		repo: repo,
	}
}

func (uc *ListRecordsByDate) Execute(
	ctx context.Context,
	clinicID uint,
	date string,
) ([]dto.AttendanceListDTO, error) {

	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	rows, err := uc.repo.ListRecordsForDay(ctx, clinicID, date)
	if err != nil {
		return nil, err
	}

	return toListDTOs(rows), nil
}

func toListDTOs(rows []models.AttendanceRecord) []dto.AttendanceListDTO {
	out := make([]dto.AttendanceListDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.AttendanceListDTO{
			ID:                r.ID,
			EmployeeID:        r.EmployeeID,
			EmployeeName:      r.Employee.Name,
			WorkDate:          r.WorkDate,
			CheckInTime:       r.CheckInTime,
			CheckOutTime:      r.CheckOutTime,
			LateMinutes:       r.LateMinutes,
			EarlyLeaveMinutes: r.EarlyLeaveMinutes,
			OvertimeMinutes:   r.OvertimeMinutes,
			TotalWorkMinutes:  r.TotalWorkMinutes,
			Status:            r.Status,
			IsManuallyEdited:  r.IsManuallyEdited,
		})
	}
	return out
}
