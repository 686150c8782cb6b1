package coinfolio

// buy is a helper for tests to create a manual buy from consts.
func buy(day, symbol string, quantity, price float64) Transaction {
	return NewBuy(MustParse(day), symbol, Q(quantity), USD(price))
}

// sell is a helper for tests to create a manual sell from consts.
func sell(day, symbol string, quantity, price float64) Transaction {
	return NewSell(MustParse(day), symbol, Q(quantity), USD(price))
}

// synced is a helper for tests to create an exchange-synced buy from consts.
func synced(day, symbol string, quantity, price float64) Transaction {
	return NewSyncedBuy(MustParse(day), symbol, Q(quantity), USD(price))
}
