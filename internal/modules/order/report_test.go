package order

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func marchOrders() []Order {
	// Newest first, the order the admin report receives them in.
	return []Order{
		{Cliente: "Ana", ValorTotal: AmountOf(25), Timestamp: "2024-03-15T22:00:00.000Z"},
		{Cliente: "Maria", ValorTotal: AmountOfString("10.50"), Timestamp: "2024-03-01T10:00:00.000Z"},
	}
}

func TestAggregate_ByDay(t *testing.T) {
	report := Aggregate(marchOrders(), ByDay)

	require.Len(t, report.Groups, 2)
	assert.Equal(t, "2024-03-15", report.Groups[0].Key, "most recent day first")
	assert.Equal(t, 25.0, report.Groups[0].Total)
	assert.Equal(t, "2024-03-01", report.Groups[1].Key)
	assert.Equal(t, 10.5, report.Groups[1].Total)
	assert.Equal(t, 35.5, report.GrandTotal)
}

func TestAggregate_ByMonth(t *testing.T) {
	report := Aggregate(marchOrders(), ByMonth)

	require.Len(t, report.Groups, 1)
	assert.Equal(t, "2024-03", report.Groups[0].Key)
	assert.Equal(t, 35.5, report.Groups[0].Total)
	assert.Equal(t, 35.5, report.GrandTotal)
}

func TestAggregate_GrandTotalIndependentOfGranularity(t *testing.T) {
	orders := append(marchOrders(),
		Order{ValorTotal: AmountOf(8), Timestamp: "2024-02-28T12:00:00.000Z"},
		Order{ValorTotal: AmountOf(4)}, // no timestamp
	)

	day := Aggregate(orders, ByDay)
	month := Aggregate(orders, ByMonth)

	assert.Equal(t, 47.5, day.GrandTotal)
	assert.Equal(t, day.GrandTotal, month.GrandTotal)
}

func TestAggregate_MonthGroupsMergeDayGroups(t *testing.T) {
	orders := append(marchOrders(),
		Order{ValorTotal: AmountOf(8), Timestamp: "2024-02-28T12:00:00.000Z"},
	)

	day := Aggregate(orders, ByDay)
	month := Aggregate(orders, ByMonth)

	require.Len(t, month.Groups, 2)
	assert.Equal(t, "2024-03", month.Groups[0].Key)
	assert.Equal(t, "2024-02", month.Groups[1].Key)

	var marchDayTotals float64
	for _, g := range day.Groups {
		if strings.HasPrefix(g.Key, "2024-03") {
			marchDayTotals += g.Total
		}
	}
	assert.Equal(t, marchDayTotals, month.Groups[0].Total,
		"a month group's total equals the sum of its day groups")
}

func TestAggregate_MissingTimestampExcludedFromGroups(t *testing.T) {
	orders := []Order{
		{Cliente: "Ana", ValorTotal: AmountOf(25), Timestamp: "2024-03-15T22:00:00.000Z"},
		{Cliente: "Sem Data", ValorTotal: AmountOf(100)},
	}

	for _, granularity := range []Granularity{ByDay, ByMonth} {
		report := Aggregate(orders, granularity)
		require.Len(t, report.Groups, 1, "no unknown-date bucket is formed")
		require.Len(t, report.Groups[0].Orders, 1)
		assert.Equal(t, "Ana", report.Groups[0].Orders[0].Cliente)
		assert.Equal(t, 125.0, report.GrandTotal,
			"untimestamped orders still count toward the grand total")
	}
}

func TestAggregate_MalformedTotalCountsAsZero(t *testing.T) {
	orders := []Order{
		{ValorTotal: AmountOfString("abc"), Timestamp: "2024-03-15T22:00:00.000Z"},
		{ValorTotal: AmountOf(25), Timestamp: "2024-03-15T23:00:00.000Z"},
	}

	report := Aggregate(orders, ByDay)

	require.Len(t, report.Groups, 1)
	assert.Equal(t, 25.0, report.Groups[0].Total)
	assert.Equal(t, 25.0, report.GrandTotal)
	assert.Len(t, report.Groups[0].Orders, 2, "the malformed order still appears in its group")
}

func TestAggregate_PreservesCallerOrderWithinGroup(t *testing.T) {
	orders := []Order{
		{Cliente: "terceiro", Timestamp: "2024-03-15T22:00:00.000Z"},
		{Cliente: "segundo", Timestamp: "2024-03-15T18:00:00.000Z"},
		{Cliente: "primeiro", Timestamp: "2024-03-15T09:00:00.000Z"},
	}

	report := Aggregate(orders, ByDay)

	require.Len(t, report.Groups, 1)
	var got []string
	for _, o := range report.Groups[0].Orders {
		got = append(got, o.Cliente)
	}
	assert.Equal(t, []string{"terceiro", "segundo", "primeiro"}, got)
}

func TestAggregate_EmptyInput(t *testing.T) {
	report := Aggregate(nil, ByDay)
	assert.Empty(t, report.Groups)
	assert.Equal(t, 0.0, report.GrandTotal)
}

func TestParseGranularity(t *testing.T) {
	tests := []struct {
		in      string
		want    Granularity
		wantErr bool
	}{
		{"day", ByDay, false},
		{"month", ByMonth, false},
		{"", ByDay, false},
		{"week", "", true},
	}
	for _, tt := range tests {
		t.Run("value "+tt.in, func(t *testing.T) {
			got, err := ParseGranularity(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSortNewestFirst(t *testing.T) {
	orders := []Order{
		{Cliente: "antigo", Timestamp: "2024-01-01T10:00:00.000Z"},
		{Cliente: "sem data"},
		{Cliente: "recente", Timestamp: "2024-03-15T10:00:00.000Z"},
	}

	SortNewestFirst(orders)

	assert.Equal(t, "recente", orders[0].Cliente)
	assert.Equal(t, "antigo", orders[1].Cliente)
	assert.Equal(t, "sem data", orders[2].Cliente, "orders without timestamps sort last")
}
