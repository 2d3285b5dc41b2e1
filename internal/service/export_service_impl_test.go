package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wayplan/internal/contract"
	"wayplan/internal/domain"
	"wayplan/internal/testutil"
)

func TestICSExportsDerivedSchedule(t *testing.T) {
	uow := testutil.NewTestUoW(testutil.NewTestDB(t))
	setVariantStartDate(t, uow, "default", time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC))
	seedItems(t, uow,
		testutil.NewTestItem("Louvre", testutil.WithOrder(0), testutil.WithDuration(120)),
		testutil.NewTestItem("someday", testutil.WithDay(domain.DayUnassigned), testutil.WithOrder(0)),
	)

	svc := NewExportService(NewViewService(uow, nil))
	out, err := svc.ICS(context.Background(), contract.ViewRequest{})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "BEGIN:VCALENDAR"))
	assert.Contains(t, out, "UID:wayplan-item-1")
	assert.Contains(t, out, "SUMMARY:Louvre")
	assert.Contains(t, out, "DTSTART:20260701T090000Z")
	assert.Contains(t, out, "DTEND:20260701T110000Z")
	assert.NotContains(t, out, "someday", "unassigned items are not exported")
}
