package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hostflow/hostflow-server/internal/models"
	"github.com/hostflow/hostflow-server/internal/repository"
	"github.com/hostflow/hostflow-server/pkg/vault"
)

// Snapshot is the blob pushed to the remote vault: the whole reconciled state
// of one property, enough to rebuild the dashboard elsewhere.
type Snapshot struct {
	Property     *models.Property     `json:"property"`
	Bookings     []models.Booking     `json:"bookings"`
	Guests       []models.Guest       `json:"guests"`
	Transactions []models.Transaction `json:"transactions"`
	SyncedAt     time.Time            `json:"synced_at"`
}

// VaultStore is satisfied by pkg/vault.Client.
type VaultStore interface {
	Put(ctx context.Context, key string, value any) error
	Get(ctx context.Context, key string, out any) error
}

type BackupService interface {
	Backup(ctx context.Context, propertyID string) (string, error)
	Restore(ctx context.Context, propertyID string) (*Snapshot, error)
}

type backupService struct {
	store           VaultStore
	propertyRepo    repository.PropertyRepository
	bookingRepo     repository.BookingRepository
	guestRepo       repository.GuestRepository
	transactionRepo repository.TransactionRepository
}

func NewBackupService(store VaultStore, propertyRepo repository.PropertyRepository, bookingRepo repository.BookingRepository, guestRepo repository.GuestRepository, transactionRepo repository.TransactionRepository) BackupService {
	return &backupService{
		store:           store,
		propertyRepo:    propertyRepo,
		bookingRepo:     bookingRepo,
		guestRepo:       guestRepo,
		transactionRepo: transactionRepo,
	}
}

// Backup pushes the property snapshot to the remote vault and returns the
// vault key it was stored under.
func (s *backupService) Backup(ctx context.Context, propertyID string) (string, error) {
	property, err := s.propertyRepo.FindByID(ctx, propertyID)
	if err != nil {
		return "", ErrPropertyNotFound
	}

	bookings, err := s.bookingRepo.FindByPropertyID(ctx, propertyID, nil)
	if err != nil {
		return "", fmt.Errorf("load bookings: %w", err)
	}
	guests, err := s.guestRepo.FindByPropertyID(ctx, propertyID)
	if err != nil {
		return "", fmt.Errorf("load guests: %w", err)
	}
	transactions, err := s.transactionRepo.FindByPropertyID(ctx, propertyID)
	if err != nil {
		return "", fmt.Errorf("load transactions: %w", err)
	}

	key := vault.KeyForEmail(property.ManagerEmail)
	snapshot := Snapshot{
		Property:     property,
		Bookings:     bookings,
		Guests:       guests,
		Transactions: transactions,
		SyncedAt:     time.Now().UTC(),
	}

	if err := s.store.Put(ctx, key, snapshot); err != nil {
		return "", fmt.Errorf("push snapshot: %w", err)
	}

	log.Printf("[Backup] property %s pushed to vault key %s (%d bookings)", propertyID, key, len(bookings))
	return key, nil
}

// Restore pulls the property's snapshot back from the vault. It does not
// write anything locally; the caller decides what to do with it.
func (s *backupService) Restore(ctx context.Context, propertyID string) (*Snapshot, error) {
	property, err := s.propertyRepo.FindByID(ctx, propertyID)
	if err != nil {
		return nil, ErrPropertyNotFound
	}

	var snapshot Snapshot
	if err := s.store.Get(ctx, vault.KeyForEmail(property.ManagerEmail), &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}
