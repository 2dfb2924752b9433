package stats

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/marocvoyages/marocvoyages-backend/pkg/db/models"
	"github.com/marocvoyages/marocvoyages-backend/pkg/enums"
	pkgerrors "github.com/marocvoyages/marocvoyages-backend/pkg/errors"
)

// DashboardStats aggregates the counters shown on the admin dashboard.
// Revenue combines completed orders and confirmed bookings.
type DashboardStats struct {
	Tours             int64           `json:"tours"`
	Products          int64           `json:"products"`
	BlogPosts         int64           `json:"blogPosts"`
	Categories        int64           `json:"categories"`
	Testimonials      int64           `json:"testimonials"`
	Subscribers       int64           `json:"subscribers"`
	Bookings          int64           `json:"bookings"`
	PendingBookings   int64           `json:"pendingBookings"`
	Orders            int64           `json:"orders"`
	PendingOrders     int64           `json:"pendingOrders"`
	CustomRequests    int64           `json:"customRequests"`
	NewCustomRequests int64           `json:"newCustomRequests"`
	OrderRevenue      decimal.Decimal `json:"orderRevenue"`
	BookingRevenue    decimal.Decimal `json:"bookingRevenue"`
	Revenue           decimal.Decimal `json:"revenue"`
}

// Repository defines the aggregate queries behind the dashboard.
type Repository interface {
	CountTours(ctx context.Context) (int64, error)
	CountProducts(ctx context.Context) (int64, error)
	CountBlogPosts(ctx context.Context) (int64, error)
	CountCategories(ctx context.Context) (int64, error)
	CountTestimonials(ctx context.Context) (int64, error)
	CountSubscribers(ctx context.Context) (int64, error)
	CountBookings(ctx context.Context) (int64, error)
	CountBookingsByStatus(ctx context.Context, status enums.BookingStatus) (int64, error)
	CountOrders(ctx context.Context) (int64, error)
	CountOrdersByStatus(ctx context.Context, status enums.OrderStatus) (int64, error)
	CountCustomRequests(ctx context.Context) (int64, error)
	CountCustomRequestsByStatus(ctx context.Context, status enums.RequestStatus) (int64, error)
	CompletedOrderTotals(ctx context.Context) ([]int, error)
	ConfirmedBookingTotals(ctx context.Context) ([]int, error)
}

// Service exposes the dashboard aggregation.
type Service interface {
	Dashboard(ctx context.Context) (*DashboardStats, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a stats repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CountTours(ctx context.Context) (int64, error) {
	return r.count(ctx, &models.Tour{})
}

func (r *repository) CountProducts(ctx context.Context) (int64, error) {
	return r.count(ctx, &models.Product{})
}

func (r *repository) CountBlogPosts(ctx context.Context) (int64, error) {
	return r.count(ctx, &models.BlogPost{})
}

func (r *repository) CountCategories(ctx context.Context) (int64, error) {
	return r.count(ctx, &models.Category{})
}

func (r *repository) CountTestimonials(ctx context.Context) (int64, error) {
	return r.count(ctx, &models.Testimonial{})
}

func (r *repository) CountSubscribers(ctx context.Context) (int64, error) {
	return r.count(ctx, &models.Newsletter{})
}

func (r *repository) CountBookings(ctx context.Context) (int64, error) {
	return r.count(ctx, &models.Booking{})
}

func (r *repository) CountBookingsByStatus(ctx context.Context, status enums.BookingStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Booking{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *repository) CountOrders(ctx context.Context) (int64, error) {
	return r.count(ctx, &models.Order{})
}

func (r *repository) CountOrdersByStatus(ctx context.Context, status enums.OrderStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Order{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *repository) CountCustomRequests(ctx context.Context) (int64, error) {
	return r.count(ctx, &models.CustomRequest{})
}

func (r *repository) CountCustomRequestsByStatus(ctx context.Context, status enums.RequestStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.CustomRequest{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *repository) CompletedOrderTotals(ctx context.Context) ([]int, error) {
	var totals []int
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("status = ?", enums.OrderStatusCompleted).
		Pluck("total_amount", &totals).Error
	return totals, err
}

func (r *repository) ConfirmedBookingTotals(ctx context.Context) ([]int, error) {
	var totals []int
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("status = ?", enums.BookingStatusConfirmed).
		Pluck("total_price", &totals).Error
	return totals, err
}

func (r *repository) count(ctx context.Context, model any) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(model).Count(&count).Error
	return count, err
}

type service struct {
	repo Repository
}

// NewService builds a stats service backed by the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("stats repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Dashboard(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}

	counters := []struct {
		dest  *int64
		fetch func(context.Context) (int64, error)
	}{
		{&stats.Tours, s.repo.CountTours},
		{&stats.Products, s.repo.CountProducts},
		{&stats.BlogPosts, s.repo.CountBlogPosts},
		{&stats.Categories, s.repo.CountCategories},
		{&stats.Testimonials, s.repo.CountTestimonials},
		{&stats.Subscribers, s.repo.CountSubscribers},
		{&stats.Bookings, s.repo.CountBookings},
		{&stats.Orders, s.repo.CountOrders},
		{&stats.CustomRequests, s.repo.CountCustomRequests},
	}
	for _, counter := range counters {
		value, err := counter.fetch(ctx)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count dashboard entities")
		}
		*counter.dest = value
	}

	pendingBookings, err := s.repo.CountBookingsByStatus(ctx, enums.BookingStatusPending)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count pending bookings")
	}
	stats.PendingBookings = pendingBookings

	pendingOrders, err := s.repo.CountOrdersByStatus(ctx, enums.OrderStatusPending)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count pending orders")
	}
	stats.PendingOrders = pendingOrders

	newRequests, err := s.repo.CountCustomRequestsByStatus(ctx, enums.RequestStatusNew)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count new custom requests")
	}
	stats.NewCustomRequests = newRequests

	orderTotals, err := s.repo.CompletedOrderTotals(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load completed order totals")
	}
	bookingTotals, err := s.repo.ConfirmedBookingTotals(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load confirmed booking totals")
	}

	stats.OrderRevenue = sumTotals(orderTotals)
	stats.BookingRevenue = sumTotals(bookingTotals)
	stats.Revenue = stats.OrderRevenue.Add(stats.BookingRevenue)
	return stats, nil
}

func sumTotals(totals []int) decimal.Decimal {
	sum := decimal.Zero
	for _, total := range totals {
		sum = sum.Add(decimal.NewFromInt(int64(total)))
	}
	return sum
}
