package model

// DashboardStats holds the roll-up shown above the dials.
type DashboardStats struct {
	TotalSpending float64
	TotalIncome   float64
	TotalSavings  float64
	SpendingLimit float64
	SavingsGoal   float64
	NetCashFlow   float64
	CreditScore   *float64
	OverBudget    int // bounded trackers past 100% of target
}

// Summarize computes DashboardStats across trackers.
func Summarize(trackers []Tracker) DashboardStats {
	var s DashboardStats
	for _, t := range trackers {
		switch t.Kind {
		case KindSpending:
			s.TotalSpending += t.Current
			s.SpendingLimit += t.Target
			if t.Target > 0 && t.Current > t.Target {
				s.OverBudget++
			}
		case KindIncome:
			s.TotalIncome += t.Current
		case KindSavings:
			s.TotalSavings += t.Current
			s.SavingsGoal += t.Target
		case KindCreditScore:
			v := t.Current
			s.CreditScore = &v
		}
	}
	s.NetCashFlow = s.TotalIncome - s.TotalSpending
	return s
}
