package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/arunvm123/bookingportal/api-service/config"
	"github.com/arunvm123/bookingportal/api-service/model"
	"github.com/arunvm123/bookingportal/api-service/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostgresRepository struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewRepository connects to the database, retrying while it starts up, and
// migrates every table.
func NewRepository(ctx context.Context, cfg *config.Database, logger *slog.Logger) (*PostgresRepository, error) {
	var (
		db  *gorm.DB
		err error
	)
	backoff := time.Duration(cfg.ConnectBackoff) * time.Second
	for attempt := 1; ; attempt++ {
		db, err = open(cfg)
		if err == nil {
			break
		}
		if attempt >= cfg.ConnectAttempts {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		logger.Warn("database not yet available", "attempt", attempt, "error", err)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}

	if err := db.AutoMigrate(&model.User{}, &model.Event{}, &model.Booking{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	logger.Info("database connected and tables migrated")

	return &PostgresRepository{db: db, logger: logger}, nil
}

func open(cfg *config.Database) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.GetDatabaseURL()), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// CreateUser creates a new user with hashed password
func (r *PostgresRepository) CreateUser(ctx context.Context, req model.CreateUserRequest) (*model.User, error) {
	db := r.db.WithContext(ctx)

	var existing model.User
	if err := db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return nil, repository.ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = model.RoleUser
	}
	user := model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		Role:         role,
	}
	if err := db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, repository.ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

// GetUserByEmail retrieves a user by email
func (r *PostgresRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// ValidatePassword checks if the provided password matches the user's password
func (r *PostgresRepository) ValidatePassword(user *model.User, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	return err == nil
}

// EnsureAdmin promotes the account to admin, creating it when missing. The
// password is reset only when an existing user is promoted. It reports
// whether anything changed.
func (r *PostgresRepository) EnsureAdmin(ctx context.Context, email, password string) (bool, error) {
	user, err := r.GetUserByEmail(ctx, email)
	if errors.Is(err, repository.ErrUserNotFound) {
		_, err := r.CreateUser(ctx, model.CreateUserRequest{
			Name:     "Admin",
			Email:    email,
			Password: password,
			Role:     model.RoleAdmin,
		})
		if err != nil {
			return false, err
		}
		return true, nil
	}
	if err != nil {
		return false, err
	}
	if user.IsAdmin() {
		return false, nil
	}

	updates := map[string]interface{}{"role": model.RoleAdmin}
	if password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return false, fmt.Errorf("failed to hash password: %w", err)
		}
		updates["password"] = string(hashedPassword)
	}
	if err := r.db.WithContext(ctx).Model(user).Updates(updates).Error; err != nil {
		return false, fmt.Errorf("failed to promote user: %w", err)
	}
	return true, nil
}

// ListEvents returns every event ordered by id
func (r *PostgresRepository) ListEvents(ctx context.Context) ([]model.Event, error) {
	var events []model.Event
	if err := r.db.WithContext(ctx).Order("id").Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

// CreateEvent creates an event with every seat available
func (r *PostgresRepository) CreateEvent(ctx context.Context, req model.CreateEventRequest) (*model.Event, error) {
	event := model.Event{
		Title:          req.Title,
		Location:       req.Location,
		Date:           req.Date,
		TotalSeats:     req.TotalSeats,
		AvailableSeats: req.TotalSeats,
	}
	if err := r.db.WithContext(ctx).Create(&event).Error; err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return &event, nil
}

// UpdateEvent replaces the event fields and shifts available seats by the
// change in total seats.
func (r *PostgresRepository) UpdateEvent(ctx context.Context, req model.UpdateEventRequest) (*model.Event, error) {
	var event model.Event
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&event, req.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return repository.ErrEventNotFound
			}
			return err
		}

		available := event.AvailableSeats + (req.TotalSeats - event.TotalSeats)
		if available < 0 {
			return repository.ErrSeatsBelowBooked
		}

		event.Title = req.Title
		event.Location = req.Location
		event.Date = req.Date
		event.TotalSeats = req.TotalSeats
		event.AvailableSeats = available
		return tx.Save(&event).Error
	})
	if err != nil {
		return nil, wrap("failed to update event", err)
	}
	return &event, nil
}

// DeleteEvent removes the event and cancels its outstanding bookings
func (r *PostgresRepository) DeleteEvent(ctx context.Context, id int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&model.Event{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return repository.ErrEventNotFound
		}
		return tx.Model(&model.Booking{}).
			Where("event_id = ? AND status <> ?", id, model.BookingStatusCancelled).
			Update("status", model.BookingStatusCancelled).Error
	})
	return wrap("failed to delete event", err)
}

// CreateBooking reserves seats under a row lock on the event
func (r *PostgresRepository) CreateBooking(ctx context.Context, req model.CreateBookingRequest) (*model.Booking, *model.Event, error) {
	var (
		event   model.Event
		booking model.Booking
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&event, req.EventID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return repository.ErrEventNotFound
			}
			return err
		}

		if event.AvailableSeats < req.SeatsBooked {
			return repository.ErrNotEnoughSeats
		}

		event.AvailableSeats -= req.SeatsBooked
		if err := tx.Model(&event).Update("available_seats", event.AvailableSeats).Error; err != nil {
			return err
		}

		booking = model.Booking{
			UserID:      req.UserID,
			EventID:     req.EventID,
			SeatsBooked: req.SeatsBooked,
			Status:      model.BookingStatusConfirmed,
		}
		return tx.Create(&booking).Error
	})
	if err != nil {
		return nil, nil, wrap("failed to create booking", err)
	}
	return &booking, &event, nil
}

// ListUserBookings returns the user's bookings ordered by id
func (r *PostgresRepository) ListUserBookings(ctx context.Context, userID int64) ([]model.Booking, error) {
	var bookings []model.Booking
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

// CancelBooking marks the booking cancelled and returns its seats. The event
// is nil when it no longer exists.
func (r *PostgresRepository) CancelBooking(ctx context.Context, bookingID, userID int64) (*model.Booking, *model.Event, error) {
	var (
		booking model.Booking
		event   *model.Event
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return repository.ErrBookingNotFound
			}
			return err
		}
		if booking.UserID != userID {
			return repository.ErrNotBookingOwner
		}
		if booking.Status == model.BookingStatusCancelled {
			return repository.ErrAlreadyCancelled
		}

		var found model.Event
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&found, booking.EventID).Error
		switch {
		case err == nil:
			found.AvailableSeats += booking.SeatsBooked
			if err := tx.Model(&found).Update("available_seats", found.AvailableSeats).Error; err != nil {
				return err
			}
			event = &found
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		booking.Status = model.BookingStatusCancelled
		return tx.Model(&booking).Update("status", booking.Status).Error
	})
	if err != nil {
		return nil, nil, wrap("failed to cancel booking", err)
	}
	return &booking, event, nil
}

// ListAllBookings returns every booking joined with its event and user
func (r *PostgresRepository) ListAllBookings(ctx context.Context) ([]model.AdminBookingRow, error) {
	var rows []model.AdminBookingRow
	err := r.db.WithContext(ctx).
		Table("bookings").
		Select(`bookings.id, bookings.event_id, COALESCE(events.title, '') AS event_title,
			bookings.user_id, COALESCE(users.name, '') AS user_name, COALESCE(users.email, '') AS user_email,
			bookings.seats_booked, bookings.status`).
		Joins("LEFT JOIN events ON events.id = bookings.event_id").
		Joins("LEFT JOIN users ON users.id = bookings.user_id").
		Order("bookings.id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list all bookings: %w", err)
	}
	return rows, nil
}

// Ping checks the database connection
func (r *PostgresRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// wrap adds context to a transaction error; repository sentinels stay
// matchable with errors.Is.
func wrap(msg string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}
