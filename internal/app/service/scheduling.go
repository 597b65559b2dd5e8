package service

import (
	"context"
	"time"
)

// SleepFunc waits for d or until ctx is done, whichever comes first. Tests
// substitute a fake.
type SleepFunc func(ctx context.Context, d time.Duration)

// SchedulingPolicy spaces the outbound requests of a batch so public RPC
// and quote endpoints are not hammered. All delays are cooperative: a
// cancelled context cuts them short.
type SchedulingPolicy struct {
	// InterStepDelay is waited before each price quote inside a wallet.
	InterStepDelay time.Duration
	// InterWalletDelay is waited between consecutive wallets, but not after
	// the last one.
	InterWalletDelay time.Duration

	Sleep SleepFunc
}

func (p SchedulingPolicy) sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	if p.Sleep != nil {
		p.Sleep(ctx, d)
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}

// PauseStep applies the inter-step delay.
func (p SchedulingPolicy) PauseStep(ctx context.Context) {
	p.sleep(ctx, p.InterStepDelay)
}

// PauseWallet applies the inter-wallet delay.
func (p SchedulingPolicy) PauseWallet(ctx context.Context) {
	p.sleep(ctx, p.InterWalletDelay)
}
