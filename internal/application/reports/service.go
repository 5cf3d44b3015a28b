package reports

import (
	"strconv"

	"github.com/baechuer/eventflow/internal/domain"
)

// Report is a display-ready table: a title, column headers and rows.
type Report struct {
	Title   string   `json:"title"`
	Columns []string `json:"columns"`
	Data    [][]any  `json:"data"`
}

// ActivityEntry is one row of the activity feed.
type ActivityEntry struct {
	ID      int    `json:"id"`
	Action  string `json:"action"`
	Details string `json:"details"`
	Time    string `json:"time"`
	Type    string `json:"type"`
}

// ActivitySource exposes recently recorded actions, newest first.
type ActivitySource interface {
	Recent() []ActivityEntry
}

// Recorder receives actions worth showing in the activity report.
type Recorder interface {
	Record(action, details, kind string)
}

type Service struct {
	activity ActivitySource
}

func NewService(activity ActivitySource) *Service {
	return &Service{activity: activity}
}

type attendee struct {
	name       string
	email      string
	event      string
	ticketType string
	status     string
}

type revenueRow struct {
	month    string
	amount   int
	expenses int
	profit   int
}

type growthRow struct {
	period  string
	rate    string
	details string
}

// Demo datasets. Revenue rows keep the invariant
// expenses + profit == amount for every month.
var (
	reportEvents = [][]any{
		{"Tech Summit 2025", "2025-03-15", "San Francisco", 120, "$35,880"},
		{"Music Festival", "2025-07-20", "Austin", 5000, "$750,000"},
		{"Art Gallery Opening", "2025-05-10", "New York", 80, "$4,000"},
	}

	attendees = []attendee{
		{"Isabella Chen", "isabella@tech.com", "Tech Summit 2025", "VIP", "Confirmed"},
		{"Liam Johnson", "liam.j@music.net", "Music Festival", "General", "Confirmed"},
		{"Sophia Williams", "sophia.w@art.org", "Art Gallery Opening", "Early Bird", "Checked In"},
		{"Noah Brown", "noah.b@startup.io", "Tech Summit 2025", "General", "Pending"},
		{"Emma Jones", "emma.j@design.co", "Art Gallery Opening", "VIP", "Confirmed"},
		{"Oliver Garcia", "oliver.g@music.net", "Music Festival", "General", "Cancelled"},
		{"Ava Miller", "ava.m@tech.com", "Tech Summit 2025", "Speaker", "Confirmed"},
		{"William Davis", "will.d@finance.com", "Tech Summit 2025", "VIP", "Confirmed"},
	}

	revenue = []revenueRow{
		{"Jan", 12000, 5000, 7000},
		{"Feb", 15000, 6000, 9000},
		{"Mar", 18000, 7000, 11000},
		{"Apr", 14000, 5500, 8500},
		{"May", 22000, 8000, 14000},
		{"Jun", 25000, 9000, 16000},
	}

	growth = []growthRow{
		{"Q1", "12.5%", "Driven by Tech Summit sales"},
		{"Q2", "15.3%", "Music Festival early bird surge"},
		{"Q3", "8.1%", "Projected stable growth"},
	}

	seededActivity = []ActivityEntry{
		{1, "New Registration", "Isabella registered for Tech Summit", "2 mins ago", "success"},
		{2, "New Registration", "Liam registered for Music Festival", "15 mins ago", "success"},
		{3, "Payment Received", "$299 from Isabella", "2 mins ago", "info"},
		{4, "Event Created", "Art Gallery Opening by Admin", "1 hour ago", "info"},
		{5, "Ticket Cancelled", "Oliver cancelled Music Festival", "3 hours ago", "warning"},
		{6, "New Comment", "Noah asked about parking at Tech Summit", "5 hours ago", "neutral"},
		{7, "System Update", "Dashboard metrics refreshed", "1 day ago", "system"},
	}
)

// Get builds the report for the given type.
func (s *Service) Get(reportType string) (Report, error) {
	switch reportType {
	case "events":
		return Report{
			Title:   "Total Events Report",
			Columns: []string{"Event", "Date", "Location", "Attendees", "Revenue"},
			Data:    reportEvents,
		}, nil

	case "attendees":
		rows := make([][]any, 0, len(attendees))
		for _, a := range attendees {
			rows = append(rows, []any{a.name, a.email, a.event, a.ticketType, a.status})
		}
		return Report{
			Title:   "Attendee Detailed Report",
			Columns: []string{"Name", "Email", "Event", "Ticket Type", "Status"},
			Data:    rows,
		}, nil

	case "revenue":
		rows := make([][]any, 0, len(revenue))
		for _, f := range revenue {
			rows = append(rows, []any{f.month, dollars(f.amount), dollars(f.expenses), dollars(f.profit)})
		}
		return Report{
			Title:   "Financial Performance Report",
			Columns: []string{"Month", "Revenue", "Expenses", "Net Profit"},
			Data:    rows,
		}, nil

	case "growth":
		rows := make([][]any, 0, len(growth))
		for _, g := range growth {
			rows = append(rows, []any{g.period, g.rate, g.details})
		}
		return Report{
			Title:   "Growth Analysis Report",
			Columns: []string{"Period", "Growth Rate", "Key Drivers"},
			Data:    rows,
		}, nil

	case "activity":
		rows := make([][]any, 0, len(seededActivity))
		// Live actions first, then the seeded demo rows.
		if s.activity != nil {
			for _, e := range s.activity.Recent() {
				rows = append(rows, []any{e.Action, e.Details, e.Time, e.Type})
			}
		}
		for _, e := range seededActivity {
			rows = append(rows, []any{e.Action, e.Details, e.Time, e.Type})
		}
		return Report{
			Title:   "Recent Activity Log",
			Columns: []string{"Action", "Details", "Time", "Type"},
			Data:    rows,
		}, nil

	default:
		return Report{}, domain.ErrInvalidReportType(reportType)
	}
}

func dollars(n int) string {
	return "$" + strconv.Itoa(n)
}
