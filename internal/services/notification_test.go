package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NikitHamal/flashy-astro-go/internal/astro"
)

func TestFormatTransitAlerts(t *testing.T) {
	alerts := []astro.TransitEvaluation{
		{
			Graha:          astro.Jupiter,
			Sign:           2,
			SignName:       "Gemini",
			BAVBindus:      6,
			SAVBindus:      34,
			CombinedScore:  decimal.NewFromFloat(0.6929),
			CombinedResult: astro.CombinedHighlyFavorable,
		},
		{
			Graha:          astro.Jupiter,
			Sign:           8,
			SignName:       "Sagittarius",
			BAVBindus:      1,
			SAVBindus:      20,
			CombinedScore:  decimal.NewFromFloat(0.2179),
			CombinedResult: astro.CombinedChallenging,
		},
	}

	message := FormatTransitAlerts(astro.Jupiter, alerts)

	assert.Contains(t, message, "*Transit outlook: Jupiter*")
	assert.Contains(t, message, "Jupiter in Gemini")
	assert.Contains(t, message, "highly favorable")
	assert.Contains(t, message, "Jupiter in Sagittarius")
	assert.Contains(t, message, "challenging")
	assert.Contains(t, message, "6/8 grid, 34/56 aggregate")
	assert.NotContains(t, message, "_", "underscores must be rewritten for display")
}

func TestNotificationService_DisabledWithoutToken(t *testing.T) {
	ns := NewNotificationService("", "12345", nil)
	assert.False(t, ns.Enabled())
}

func TestNotificationService_NoAlertsIsNoop(t *testing.T) {
	ns := NewNotificationService("", "", nil)
	err := ns.NotifyTransitAlerts(context.Background(), astro.Mars, nil)
	require.NoError(t, err)
}

func TestNotificationService_DisabledDeliveryIsNoop(t *testing.T) {
	ns := NewNotificationService("", "", nil)
	alerts := []astro.TransitEvaluation{{
		Graha:          astro.Venus,
		SignName:       "Libra",
		CombinedScore:  decimal.NewFromFloat(0.7),
		CombinedResult: astro.CombinedHighlyFavorable,
	}}
	err := ns.NotifyTransitAlerts(context.Background(), astro.Venus, alerts)
	require.NoError(t, err)
}
