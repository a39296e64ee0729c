package catalog

// DashboardStats carries the headline figures on the dashboard.
type DashboardStats struct {
	TotalJobs   string
	SuccessRate string
	AvgTime     string
	QueueDepth  int
}

// CustomerShare is one row of the per-customer breakdown card.
type CustomerShare struct {
	Name    string
	Jobs    int
	Percent int
}

// JobEntry is one row of the recent-jobs table.
type JobEntry struct {
	ID       int
	Status   string
	Customer string
	Type     string
	Age      string
}

// DashboardData returns the demo figures shown after login.
func DashboardData() (DashboardStats, []CustomerShare, []JobEntry) {
	stats := DashboardStats{
		TotalJobs:   "1,247",
		SuccessRate: "98.5%",
		AvgTime:     "2.3s",
		QueueDepth:  142,
	}
	customers := []CustomerShare{
		{Name: "customer1", Jobs: 847, Percent: 68},
		{Name: "customer2", Jobs: 258, Percent: 21},
		{Name: "customer3", Jobs: 142, Percent: 11},
	}
	jobs := []JobEntry{
		{ID: 1247, Status: "completed", Customer: "customer1", Type: "Invoice OCR", Age: "2 minutes ago"},
		{ID: 1246, Status: "processing", Customer: "customer1", Type: "Receipt Extract", Age: "5 minutes ago"},
		{ID: 1245, Status: "queued", Customer: "customer2", Type: "Form Validation", Age: "10 minutes ago"},
	}
	return stats, customers, jobs
}
