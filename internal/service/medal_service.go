package service

import (
	"time"

	"github.com/gatherly/gatherly-backend/internal/models"
	"github.com/gatherly/gatherly-backend/pkg/apperr"
	"go.uber.org/zap"
)

const medalDiscountValidity = 30 * 24 * time.Hour

// MedalStore persists the loyalty ledger and answers the accrual queries.
type MedalStore interface {
	Create(medal *models.Medal) error
	GetUserMedals(userID uint) ([]models.Medal, error)
	CountForPeriod(userID uint, periodStart time.Time, medalType models.MedalType) (int, error)
	CountQualifyingEvents(userID uint, periodStart, periodEnd time.Time) (int, error)
}

// MedalService accrues loyalty medals from event activity. Grants are
// strictly additive; recomputation never takes a medal away.
type MedalService struct {
	medals MedalStore
	users  UserDirectory
	mailer Mailer
	logger *zap.Logger
	now    func() time.Time
}

func NewMedalService(medals MedalStore, users UserDirectory, mailer Mailer, logger *zap.Logger) *MedalService {
	return &MedalService{
		medals: medals,
		users:  users,
		mailer: mailer,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// DerivePeriod computes the accrual period for a user who joined at joinDate.
// Periods are whole calendar months: the first one starts on the 1st of the
// join month, or of the following month when the user joined mid-month, and
// the anchor then advances month by month up to the current month. The end is
// the last instant of that month.
func DerivePeriod(joinDate, now time.Time) (time.Time, time.Time) {
	start := time.Date(joinDate.Year(), joinDate.Month(), 1, 0, 0, 0, 0, joinDate.Location())
	if joinDate.Day() > 1 {
		start = start.AddDate(0, 1, 0)
	}

	currentMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	for start.Before(currentMonth) {
		start = start.AddDate(0, 1, 0)
	}

	end := start.AddDate(0, 1, 0).Add(-time.Second)
	return start, end
}

// RecordActivity is the engine's trigger entry point, called after every
// event activation and attendance creation. Accrual failures are logged, not
// surfaced: a medal must never fail the payment that triggered it.
func (s *MedalService) RecordActivity(userID uint) {
	if _, err := s.AwardForActivity(userID); err != nil {
		s.logger.Warn("medal accrual failed", zap.Uint("user_id", userID), zap.Error(err))
	}
}

// AwardForActivity recounts the user's qualifying events for the current
// accrual period and grants at most the single highest-priority applicable
// medal. Returns nil when nothing new was earned.
func (s *MedalService) AwardForActivity(userID uint) (*models.Medal, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	now := s.now()
	periodStart, periodEnd := DerivePeriod(user.CreatedAt, now)
	if periodStart.After(now) {
		// The user's first period has not begun yet.
		return nil, nil
	}

	count, err := s.medals.CountQualifyingEvents(userID, periodStart, periodEnd)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	golds, err := s.medals.CountForPeriod(userID, periodStart, models.MedalGold)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	silvers, err := s.medals.CountForPeriod(userID, periodStart, models.MedalSilver)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	bronzes, err := s.medals.CountForPeriod(userID, periodStart, models.MedalBronze)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	var medal *models.Medal
	expiry := now.Add(medalDiscountValidity)

	switch {
	case count >= 3 && count/3 > golds:
		// Repeatable: one gold for each new multiple of three.
		medal = &models.Medal{
			UserID:             userID,
			MedalType:          models.MedalGold,
			DiscountPercentage: 5.00,
			DiscountExpiresAt:  &expiry,
		}
	case count == 2 && silvers == 0 && golds == 0:
		medal = &models.Medal{
			UserID:             userID,
			MedalType:          models.MedalSilver,
			DiscountPercentage: 3.00,
			DiscountExpiresAt:  &expiry,
		}
	case count == 1 && bronzes == 0 && silvers == 0 && golds == 0:
		medal = &models.Medal{
			UserID:             userID,
			MedalType:          models.MedalBronze,
			DiscountPercentage: 0.00,
		}
	default:
		return nil, nil
	}

	medal.PeriodStart = periodStart
	medal.PeriodEnd = periodEnd
	if err := s.medals.Create(medal); err != nil {
		return nil, apperr.Internal(err)
	}

	if s.mailer != nil {
		go s.mailer.SendMedalEmail(user.Email, user.FullName, string(medal.MedalType), medal.DiscountPercentage)
	}

	return medal, nil
}

func (s *MedalService) GetUserMedals(userID uint) ([]models.Medal, error) {
	medals, err := s.medals.GetUserMedals(userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return medals, nil
}
