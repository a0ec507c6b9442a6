package wallet

import "github.com/ethereum/go-ethereum/event"

// accountFeed fans the wallet's account list out to subscribers
type accountFeed struct {
	feed event.Feed
}

func (f *accountFeed) subscribe(ch chan<- []string) func() {
	sub := f.feed.Subscribe(ch)
	return sub.Unsubscribe
}

func (f *accountFeed) send(accounts []string) {
	f.feed.Send(accounts)
}
