package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"parkdesk/internal/models"
	"parkdesk/internal/repository"
)

// fakeStore is an in-memory repository.Store. WithinTx serializes callers
// on a single mutex, mirroring the one-transaction-per-operation model.
type fakeStore struct {
	mu            sync.Mutex
	slots         map[int64]*models.Slot
	vehicles      map[string]*models.Vehicle
	sessions      map[int64]*models.Session
	nextSessionID int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		slots:    make(map[int64]*models.Slot),
		vehicles: make(map[string]*models.Vehicle),
		sessions: make(map[int64]*models.Session),
	}
}

func (f *fakeStore) addSlot(id int64, number string, category models.SlotCategory, status models.SlotStatus) {
	f.slots[id] = &models.Slot{ID: id, SlotNumber: number, Category: category, Status: status}
}

func (f *fakeStore) WithinTx(ctx context.Context, fn func(tx repository.Store) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(f)
}

func (f *fakeStore) SlotByID(ctx context.Context, id int64) (*models.Slot, error) {
	slot, ok := f.slots[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *slot
	return &copied, nil
}

func (f *fakeStore) SlotForUpdate(ctx context.Context, id int64) (*models.Slot, error) {
	return f.SlotByID(ctx, id)
}

func (f *fakeStore) FirstAvailableSlot(ctx context.Context, category models.SlotCategory) (*models.Slot, error) {
	var best *models.Slot
	for _, slot := range f.slots {
		if slot.Category != category || slot.Status != models.SlotAvailable {
			continue
		}
		if best == nil || slot.SlotNumber < best.SlotNumber {
			best = slot
		}
	}
	if best == nil {
		return nil, repository.ErrNotFound
	}
	copied := *best
	return &copied, nil
}

func (f *fakeStore) UpdateSlotStatus(ctx context.Context, id int64, status models.SlotStatus) error {
	slot, ok := f.slots[id]
	if !ok {
		return repository.ErrNotFound
	}
	slot.Status = status
	return nil
}

func (f *fakeStore) ListSlots(ctx context.Context, filter models.SlotFilter) ([]models.SlotWithSession, error) {
	var out []models.SlotWithSession
	for _, slot := range f.slots {
		if filter.Category != "" && slot.Category != filter.Category {
			continue
		}
		if filter.Status != "" && slot.Status != filter.Status {
			continue
		}
		item := models.SlotWithSession{Slot: *slot}
		for _, session := range f.sessions {
			if session.SlotID == slot.ID && session.Status == models.SessionActive {
				copied := *session
				item.ActiveSession = &copied
				if vehicle, ok := f.vehicles[session.Plate]; ok {
					vcopy := *vehicle
					item.Vehicle = &vcopy
				}
			}
		}
		if filter.Search != "" {
			needle := strings.ToUpper(filter.Search)
			matched := strings.Contains(strings.ToUpper(slot.SlotNumber), needle)
			if item.ActiveSession != nil && strings.Contains(item.ActiveSession.Plate, needle) {
				matched = true
			}
			if !matched {
				continue
			}
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SlotNumber < out[j].SlotNumber })
	return out, nil
}

func (f *fakeStore) UpsertVehicle(ctx context.Context, vehicle *models.Vehicle) error {
	existing, ok := f.vehicles[vehicle.Plate]
	if ok {
		existing.Category = vehicle.Category
		*vehicle = *existing
		return nil
	}
	copied := *vehicle
	f.vehicles[vehicle.Plate] = &copied
	return nil
}

func (f *fakeStore) VehicleByPlate(ctx context.Context, plate string) (*models.Vehicle, error) {
	vehicle, ok := f.vehicles[plate]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *vehicle
	return &copied, nil
}

func (f *fakeStore) ActiveSessionByPlate(ctx context.Context, plate string) (*models.Session, error) {
	for _, session := range f.sessions {
		if session.Plate == plate && session.Status == models.SessionActive {
			copied := *session
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeStore) ActiveSessionBySlot(ctx context.Context, slotID int64) (*models.Session, error) {
	for _, session := range f.sessions {
		if session.SlotID == slotID && session.Status == models.SessionActive {
			copied := *session
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeStore) LatestSessionBySlot(ctx context.Context, slotID int64) (*models.Session, error) {
	var best *models.Session
	for _, session := range f.sessions {
		if session.SlotID != slotID {
			continue
		}
		if best == nil || session.EntryTime.After(best.EntryTime) {
			best = session
		}
	}
	if best == nil {
		return nil, repository.ErrNotFound
	}
	copied := *best
	return &copied, nil
}

func (f *fakeStore) CreateSession(ctx context.Context, session *models.Session) error {
	if session.Status == models.SessionActive {
		for _, existing := range f.sessions {
			if existing.Status != models.SessionActive {
				continue
			}
			if existing.Plate == session.Plate {
				return repository.ErrPlateSessionExists
			}
			if existing.SlotID == session.SlotID {
				return repository.ErrSlotSessionExists
			}
		}
	}
	f.nextSessionID++
	session.ID = f.nextSessionID
	copied := *session
	f.sessions[session.ID] = &copied
	return nil
}

func (f *fakeStore) UpdateSession(ctx context.Context, session *models.Session) error {
	if _, ok := f.sessions[session.ID]; !ok {
		return repository.ErrNotFound
	}
	copied := *session
	f.sessions[session.ID] = &copied
	return nil
}

func (f *fakeStore) Stats(ctx context.Context, since time.Time) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{}
	for _, slot := range f.slots {
		stats.TotalSlots++
		switch slot.Status {
		case models.SlotAvailable:
			stats.AvailableSlots++
		case models.SlotOccupied:
			stats.OccupiedSlots++
		case models.SlotMaintenance:
			stats.MaintenanceSlots++
		}
	}
	for _, session := range f.sessions {
		if session.Status == models.SessionActive {
			stats.ActiveSessions++
			continue
		}
		if session.ExitTime == nil || session.ExitTime.Before(since) || session.Amount == nil {
			continue
		}
		stats.RevenueToday += *session.Amount
		if session.BillingType == models.BillingHourly {
			stats.HourlyRevenue += *session.Amount
		} else {
			stats.DayPassRevenue += *session.Amount
		}
	}
	return stats, nil
}

// slotStatus reads a slot's status outside any transaction.
func (f *fakeStore) slotStatus(id int64) models.SlotStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.slots[id].Status
}

// sessionByID reads a stored session outside any transaction.
func (f *fakeStore) sessionByID(id int64) *models.Session {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *f.sessions[id]
	return &copied
}
