// Package booking confirms appointments against slots from the generated
// inventory. Bookings live in memory for the life of the process.
package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iliyamo/appointment-booking/internal/geo"
	"github.com/iliyamo/appointment-booking/internal/queue"
	"github.com/iliyamo/appointment-booking/internal/slot"
)

var (
	ErrSlotNotFound     = errors.New("slot not found")
	ErrSlotTaken        = errors.New("slot already booked")
	ErrUnknownService   = errors.New("unknown service")
	ErrInvalidApplicant = errors.New("invalid applicant details")
	ErrBookingNotFound  = errors.New("booking not found")
)

// StatusConfirmed is the only status a stored booking can have.
const StatusConfirmed = "confirmed"

// Applicant is the person the appointment is for.
type Applicant struct {
	IDKind    IDKind `json:"id_kind" validate:"required,oneof=sa_id passport"`
	IDNumber  string `json:"id_number" validate:"required"`
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required,e164"`
}

func (a Applicant) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// Request asks for one slot and the services to be handled in it.
type Request struct {
	Applicant Applicant `json:"applicant"`
	SlotID    int       `json:"slot_id" validate:"required,gt=0"`
	Services  []string  `json:"services" validate:"required,min=1,dive,required"`
}

type Booking struct {
	Reference    string       `json:"reference"`
	Status       string       `json:"status"`
	Slot         slot.Slot    `json:"slot"`
	BranchName   string       `json:"branch_name"`
	CityName     string       `json:"city_name"`
	ProvinceName string       `json:"province_name"`
	Services     []GovService `json:"services"`
	Applicant    Applicant    `json:"applicant"`
	CreatedAt    time.Time    `json:"created_at"`
}

// SlotLookup resolves slot ids. *slot.Service implements it.
type SlotLookup interface {
	Slot(id int) (slot.Slot, bool)
	Catalog() *geo.Catalog
}

// Publisher announces confirmed bookings. service.QueuePublisher
// implements it.
type Publisher interface {
	PublishBookingConfirmed(ctx context.Context, ev queue.BookingConfirmedEvent) error
}

// Recorder counts booking attempts by status. metrics.SlotMetrics
// implements it.
type Recorder interface {
	ObserveBooking(status string)
}

type Options struct {
	Publisher Publisher
	Metrics   Recorder
	Logger    *zap.Logger
	// Delay emulates the confirmation round trip.
	Delay time.Duration
	Sleep slot.Sleeper
	Now   func() time.Time
	NewID func() string
}

// Service books slots. A slot can be booked once per process.
type Service struct {
	slots    SlotLookup
	validate *validator.Validate

	mu       sync.Mutex
	bookings map[string]Booking
	taken    map[int]string

	publisher Publisher
	metrics   Recorder
	log       *zap.Logger
	delay     time.Duration
	sleep     slot.Sleeper
	now       func() time.Time
	newID     func() string
}

func NewService(slots SlotLookup, opts Options) *Service {
	s := &Service{
		slots:     slots,
		validate:  validator.New(),
		bookings:  make(map[string]Booking),
		taken:     make(map[int]string),
		publisher: opts.Publisher,
		metrics:   opts.Metrics,
		log:       opts.Logger,
		delay:     opts.Delay,
		sleep:     opts.Sleep,
		now:       opts.Now,
		newID:     opts.NewID,
	}
	if s.metrics == nil {
		s.metrics = nopRecorder{}
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.sleep == nil {
		s.sleep = slot.ContextSleep
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = func() string { return uuid.NewString() }
	}
	return s
}

// Book validates req, reserves the slot and publishes a confirmation.
// A failed publish is logged; the booking still stands.
func (s *Service) Book(ctx context.Context, req Request) (Booking, error) {
	req.Applicant.IDNumber = NormalizeIdentity(req.Applicant.IDKind, req.Applicant.IDNumber)
	req.Applicant.Email = strings.TrimSpace(req.Applicant.Email)

	if err := s.validate.Struct(req); err != nil {
		s.metrics.ObserveBooking("invalid")
		return Booking{}, fmt.Errorf("%w: %v", ErrInvalidApplicant, err)
	}
	if err := ValidateIdentity(req.Applicant.IDKind, req.Applicant.IDNumber); err != nil {
		s.metrics.ObserveBooking("invalid")
		return Booking{}, err
	}

	services := make([]GovService, 0, len(req.Services))
	seen := make(map[string]bool, len(req.Services))
	for _, id := range req.Services {
		if seen[id] {
			continue
		}
		seen[id] = true
		gs, ok := LookupService(id)
		if !ok {
			s.metrics.ObserveBooking("invalid")
			return Booking{}, fmt.Errorf("%w: %s", ErrUnknownService, id)
		}
		services = append(services, gs)
	}

	sl, ok := s.slots.Slot(req.SlotID)
	if !ok {
		s.metrics.ObserveBooking("not_found")
		return Booking{}, ErrSlotNotFound
	}

	if err := s.sleep(ctx, s.delay); err != nil {
		s.metrics.ObserveBooking("cancelled")
		return Booking{}, err
	}

	catalog := s.slots.Catalog()
	branch, _ := catalog.Branch(sl.BranchID)
	city, _ := catalog.City(branch.CityID)
	province, _ := catalog.Province(city.ProvinceID)

	s.mu.Lock()
	if ref, ok := s.taken[sl.ID]; ok {
		s.mu.Unlock()
		s.metrics.ObserveBooking("conflict")
		s.log.Info("booking.Book slot already taken", zap.Int("slot_id", sl.ID), zap.String("held_by", ref))
		return Booking{}, ErrSlotTaken
	}
	b := Booking{
		Reference:    s.newID(),
		Status:       StatusConfirmed,
		Slot:         sl,
		BranchName:   branch.Name,
		CityName:     city.Name,
		ProvinceName: province.Name,
		Services:     services,
		Applicant:    req.Applicant,
		CreatedAt:    s.now().UTC(),
	}
	s.taken[sl.ID] = b.Reference
	s.bookings[b.Reference] = b
	s.mu.Unlock()

	s.metrics.ObserveBooking(StatusConfirmed)
	s.log.Info("booking.Book confirmed",
		zap.String("reference", b.Reference),
		zap.Int("slot_id", sl.ID),
		zap.String("branch_id", sl.BranchID),
		zap.String("date", sl.Date),
	)

	if s.publisher != nil {
		if err := s.publisher.PublishBookingConfirmed(ctx, confirmedEvent(b)); err != nil {
			s.log.Warn("booking.Book publish failed", zap.String("reference", b.Reference), zap.Error(err))
		}
	}
	return b, nil
}

// Get returns the booking stored under reference.
func (s *Service) Get(reference string) (Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[reference]
	if !ok {
		return Booking{}, ErrBookingNotFound
	}
	return b, nil
}

// isTaken reports whether slotID has been booked.
func (s *Service) isTaken(slotID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.taken[slotID]
	return ok
}

func confirmedEvent(b Booking) queue.BookingConfirmedEvent {
	ids := make([]string, 0, len(b.Services))
	for _, gs := range b.Services {
		ids = append(ids, gs.ID)
	}
	return queue.BookingConfirmedEvent{
		Reference:     b.Reference,
		SlotID:        b.Slot.ID,
		BranchID:      b.Slot.BranchID,
		BranchName:    b.BranchName,
		CityName:      b.CityName,
		ProvinceName:  b.ProvinceName,
		Date:          b.Slot.Date,
		Time:          b.Slot.Time,
		Services:      ids,
		ApplicantName: b.Applicant.FullName(),
		Email:         b.Applicant.Email,
		ConfirmedAt:   b.CreatedAt.Format(time.RFC3339),
	}
}

type nopRecorder struct{}

func (nopRecorder) ObserveBooking(string) {}
