package dashboard

// Card variants.
const (
	VariantDark  = "dark"
	VariantLight = "light"
)

// Transaction kinds, used to pick the icon.
const (
	TransactionDepositCard = "deposit-card"
	TransactionPaypal      = "paypal"
	TransactionMoney       = "money"
)

type Card struct {
	ID         string `json:"id"`
	Variant    string `json:"variant"`
	Balance    string `json:"balance"`
	CardHolder string `json:"cardHolder"`
	ValidThru  string `json:"validThru"`
	CardNumber string `json:"cardNumber"`
}

type Transaction struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Date       string `json:"date"`
	Amount     string `json:"amount"`
	Type       string `json:"type"`
	IsPositive bool   `json:"isPositive"`
}

type WeeklyActivity struct {
	Day      string `json:"day"`
	Deposit  int    `json:"deposit"`
	Withdraw int    `json:"withdraw"`
}

type ExpenseStatistic struct {
	Name       string `json:"name"`
	Percentage int    `json:"percentage"`
	Color      string `json:"color"`
}

type Contact struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

type BalancePoint struct {
	Month   string `json:"month"`
	Balance int    `json:"balance"`
}

// The fixtures below are returned as fresh slices so callers may modify them.

func cards() []Card {
	return []Card{
		{ID: "1", Variant: VariantDark, Balance: "$5,756", CardHolder: "Eddy Cusuma", ValidThru: "12/22", CardNumber: "3778 **** **** 1234"},
		{ID: "2", Variant: VariantLight, Balance: "$5,756", CardHolder: "Eddy Cusuma", ValidThru: "12/22", CardNumber: "3778 **** **** 1234"},
	}
}

func transactions() []Transaction {
	return []Transaction{
		{ID: "1", Title: "Deposit from my Card", Date: "28 January 2021", Amount: "$850", Type: TransactionDepositCard, IsPositive: false},
		{ID: "2", Title: "Deposit Paypal", Date: "25 January 2021", Amount: "$2,500", Type: TransactionPaypal, IsPositive: true},
		{ID: "3", Title: "Jemi Wilson", Date: "21 January 2021", Amount: "$5,400", Type: TransactionMoney, IsPositive: true},
		{ID: "4", Title: "Netflix Subscription", Date: "18 January 2021", Amount: "$14.99", Type: TransactionDepositCard, IsPositive: false},
		{ID: "5", Title: "Amazon Purchase", Date: "15 January 2021", Amount: "$250", Type: TransactionDepositCard, IsPositive: false},
	}
}

func weeklyActivity() []WeeklyActivity {
	return []WeeklyActivity{
		{Day: "Sat", Deposit: 230, Withdraw: 450},
		{Day: "Sun", Deposit: 120, Withdraw: 320},
		{Day: "Mon", Deposit: 260, Withdraw: 310},
		{Day: "Tue", Deposit: 350, Withdraw: 450},
		{Day: "Wed", Deposit: 230, Withdraw: 150},
		{Day: "Thu", Deposit: 230, Withdraw: 380},
		{Day: "Fri", Deposit: 320, Withdraw: 380},
	}
}

func expenseStatistics() []ExpenseStatistic {
	return []ExpenseStatistic{
		{Name: "Entertainment", Percentage: 30, Color: "#3B4B80"},
		{Name: "Bill Expense", Percentage: 15, Color: "#F97316"},
		{Name: "Investment", Percentage: 20, Color: "#3B82F6"},
		{Name: "Others", Percentage: 35, Color: "#1F2937"},
	}
}

func contacts() []Contact {
	return []Contact{
		{ID: "1", Name: "Livia Bator", Avatar: "/assets/avatar-livia.png"},
		{ID: "2", Name: "Randy Press", Avatar: "/assets/avatar-randy.png"},
		{ID: "3", Name: "Workman", Avatar: "/assets/avatar-workman.png"},
	}
}

func balanceHistory() []BalancePoint {
	return []BalancePoint{
		{Month: "Jul", Balance: 150},
		{Month: "Aug", Balance: 320},
		{Month: "Sep", Balance: 250},
		{Month: "Oct", Balance: 450},
		{Month: "Nov", Balance: 520},
		{Month: "Dec", Balance: 780},
		{Month: "Jan", Balance: 220},
		{Month: "Feb", Balance: 550},
		{Month: "Mar", Balance: 300},
		{Month: "Apr", Balance: 580},
		{Month: "May", Balance: 250},
		{Month: "Jun", Balance: 620},
	}
}
