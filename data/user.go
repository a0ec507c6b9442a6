package data

// User - a telegram user of the bot and the wallet they play with
type User struct {
	ID      int64
	Wallet  string
	Account uint32
}

type Telegram struct {
	ID        int64
	UserName  string
	FirstName string
	LastName  string
}
