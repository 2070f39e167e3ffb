package reports

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/m04kA/salon-booking-service/internal/domain"
	"github.com/m04kA/salon-booking-service/internal/service/reports/models"
)

var csvHeader = []string{
	"id",
	"date",
	"start_time",
	"end_time",
	"service",
	"price",
	"status",
	"customer_name",
	"customer_email",
	"customer_phone",
	"notes",
	"cancellation_reason",
	"created_at",
}

// Service сервис отчетов
type Service struct {
	bookingRepo BookingRepository
	txManager   TxManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса отчетов
func NewService(bookingRepo BookingRepository, txManager TxManager, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Summary считает итоги по бронированиям за период
// Выручка считается по подтвержденным и завершенным бронированиям
func (s *Service) Summary(ctx context.Context, req models.ReportRequest) (*models.SummaryResponse, error) {
	from, to, err := s.parseRange(req)
	if err != nil {
		return nil, err
	}

	bookings, err := s.load(ctx, from, to)
	if err != nil {
		return nil, err
	}

	report := aggregate(from, to, bookings)
	s.logger.Info("ReportSummary: %s..%s, bookings=%d", req.From, req.To, report.TotalBookings)

	return models.FromDomainReport(report), nil
}

// ExportCSV пишет бронирования за период в CSV, включая отмененные
func (s *Service) ExportCSV(ctx context.Context, req models.ReportRequest, w io.Writer) error {
	from, to, err := s.parseRange(req)
	if err != nil {
		return err
	}

	bookings, err := s.load(ctx, from, to)
	if err != nil {
		return err
	}

	// в выгрузке хронологический порядок
	sort.SliceStable(bookings, func(i, j int) bool {
		if !bookings[i].BookingDate.Equal(bookings[j].BookingDate) {
			return bookings[i].BookingDate.Before(bookings[j].BookingDate)
		}
		return bookings[i].StartTime.IsBefore(bookings[j].StartTime)
	})

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("%w: ExportCSV - write header: %v", ErrInternal, err)
	}
	for _, b := range bookings {
		if err := cw.Write(csvRecord(b)); err != nil {
			return fmt.Errorf("%w: ExportCSV - write record id=%d: %v", ErrInternal, b.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("%w: ExportCSV - flush: %v", ErrInternal, err)
	}

	s.logger.Info("ReportCSV: %s..%s, rows=%d", req.From, req.To, len(bookings))
	return nil
}

func (s *Service) parseRange(req models.ReportRequest) (time.Time, time.Time, error) {
	from, to, err := req.Parse()
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: to is before from", ErrInvalidInput)
	}
	if days := int(to.Sub(from).Hours()/24) + 1; days > domain.MaxReportRangeDays {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: range must not exceed %d days", ErrInvalidInput, domain.MaxReportRangeDays)
	}
	return from, to, nil
}

func (s *Service) load(ctx context.Context, from, to time.Time) ([]*domain.Booking, error) {
	var bookings []*domain.Booking
	err := s.txManager.DoReadOnly(ctx, func(ctx context.Context) error {
		var err error
		bookings, err = s.bookingRepo.List(ctx, domain.BookingsFilter{
			StartDate:        &from,
			EndDate:          &to,
			IncludeCancelled: true,
		})
		return err
	})
	if err != nil {
		s.logger.Error("Report: failed to load bookings %s..%s: %v",
			from.Format(domain.DateFormat), to.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: load - repository error: %v", ErrInternal, err)
	}
	return bookings, nil
}

func aggregate(from, to time.Time, bookings []*domain.Booking) *domain.BookingReport {
	report := &domain.BookingReport{
		From:     from,
		To:       to,
		ByStatus: make(map[domain.BookingStatus]int, len(domain.AllStatuses)),
	}
	for _, st := range domain.AllStatuses {
		report.ByStatus[st] = 0
	}

	days := make(map[string]*domain.DayStats)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		report.ByDay = append(report.ByDay, domain.DayStats{Date: d})
	}
	for i := range report.ByDay {
		days[report.ByDay[i].Date.Format(domain.DateFormat)] = &report.ByDay[i]
	}

	services := make(map[int64]*domain.ServiceStats)
	var order []int64

	for _, b := range bookings {
		report.TotalBookings++
		report.ByStatus[b.Status]++

		revenue := 0.0
		if countsAsRevenue(b.Status) {
			revenue = b.ServicePrice
			report.Revenue += revenue
		}

		stats, ok := services[b.ServiceID]
		if !ok {
			stats = &domain.ServiceStats{ServiceID: b.ServiceID, ServiceName: b.ServiceName}
			services[b.ServiceID] = stats
			order = append(order, b.ServiceID)
		}
		if !b.IsCancelled() {
			stats.Bookings++
		}
		stats.Revenue += revenue

		if day, ok := days[b.BookingDate.Format(domain.DateFormat)]; ok {
			day.Bookings++
			if b.IsCancelled() {
				day.Cancelled++
			}
			day.Revenue += revenue
		}
	}

	for _, id := range order {
		stats := *services[id]
		stats.Revenue = roundMoney(stats.Revenue)
		report.ByService = append(report.ByService, stats)
	}
	sort.SliceStable(report.ByService, func(i, j int) bool {
		return report.ByService[i].Revenue > report.ByService[j].Revenue
	})
	for i := range report.ByDay {
		report.ByDay[i].Revenue = roundMoney(report.ByDay[i].Revenue)
	}
	report.Revenue = roundMoney(report.Revenue)

	return report
}

func countsAsRevenue(status domain.BookingStatus) bool {
	for _, st := range domain.RevenueStatuses {
		if st == status {
			return true
		}
	}
	return false
}

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

func csvRecord(b *domain.Booking) []string {
	end, err := b.EndTime()
	if err != nil {
		end = ""
	}
	return []string{
		strconv.FormatInt(b.ID, 10),
		b.BookingDate.Format(domain.DateFormat),
		b.StartTime.String(),
		end.String(),
		b.ServiceName,
		strconv.FormatFloat(b.ServicePrice, 'f', 2, 64),
		string(b.Status),
		b.CustomerName,
		b.CustomerEmail,
		b.CustomerPhone,
		deref(b.Notes),
		deref(b.CancellationReason),
		b.CreatedAt.Format(time.RFC3339),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
