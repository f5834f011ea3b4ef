package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/yourusername/qrfolio-api/internal/model"
)

// SubscriptionSource is the slice of the subscription store needed to
// resolve a caller's plan.
type SubscriptionSource interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*model.Subscription, error)
}

// CurrentPlan resolves the effective plan for the request's user. Anonymous
// callers, lookup failures, and lapsed subscriptions all resolve to free;
// only an active or trialing subscription grants its plan.
func CurrentPlan(c *gin.Context, subs SubscriptionSource) string {
	userID, err := uuid.Parse(GetUserID(c))
	if err != nil {
		return model.PlanFree
	}

	sub, err := subs.FindByUserID(c.Request.Context(), userID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to check subscription")
		return model.PlanFree
	}
	if sub == nil {
		return model.PlanFree
	}

	switch sub.Status {
	case model.SubStatusActive, model.SubStatusTrialing:
		return sub.Plan
	default:
		return model.PlanFree
	}
}
