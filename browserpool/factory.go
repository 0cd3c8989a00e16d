// Package browserpool adapts headless-Chrome tabs to pool.Factory, so a
// pool.Pool can lend and recycle chromedp browser contexts instead of
// paying full browser-launch cost per request. See SPEC_FULL.md §4.10.
package browserpool

import (
	"context"
	"errors"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// navigate issues a raw CDP Page.navigate command rather than going through
// chromedp's higher-level chromedp.Navigate action; it does not wait for
// the page's load event. Used for both the creation and passivation
// round-trips so a Tab's lifecycle has to prove the DevTools protocol
// connection is actually alive, not just that the chromedp wrapper is
// happy.
func navigate(url string) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		_, _, _, err := page.Navigate(url).Do(ctx)
		return err
	})
}

// Tab is the resource type this factory hands to the pool: one chromedp
// browser-tab context plus its cancel function.
type Tab struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// Factory opens tabs against a shared remote-allocator context, so every
// Tab it creates lives in the same Chrome instance.
type Factory struct {
	allocCtx    context.Context
	allocCancel context.CancelFunc
	navTimeout  time.Duration
}

// NewFactory connects to a Chrome instance already listening for DevTools
// connections at debugURL (typically started with
// --remote-debugging-port=9222). Closing the returned Factory tears down
// the allocator connection; do this only after the owning pool.Pool has
// been closed.
func NewFactory(ctx context.Context, debugURL string) *Factory {
	allocCtx, allocCancel := chromedp.NewRemoteAllocator(ctx, debugURL)
	return &Factory{allocCtx: allocCtx, allocCancel: allocCancel, navTimeout: 10 * time.Second}
}

// Close tears down the allocator connection.
func (f *Factory) Close() {
	f.allocCancel()
}

// MakeObject implements pool.Factory: it opens a fresh tab and forces tab
// creation by navigating it to a blank page.
func (f *Factory) MakeObject() (interface{}, error) {
	ctx, cancel := chromedp.NewContext(f.allocCtx)
	runCtx, runCancel := context.WithTimeout(ctx, f.navTimeout)
	defer runCancel()
	if err := chromedp.Run(runCtx, navigate("about:blank")); err != nil {
		cancel()
		return nil, err
	}
	return &Tab{ctx: ctx, cancel: cancel}, nil
}

// DestroyObject implements pool.Factory by closing the tab's context.
func (f *Factory) DestroyObject(obj interface{}) error {
	obj.(*Tab).cancel()
	return nil
}

// ValidateObject implements pool.Factory: a tab is valid as long as its
// context has not been cancelled and a trivial action still succeeds.
func (f *Factory) ValidateObject(obj interface{}) (bool, error) {
	tab := obj.(*Tab)
	if tab.ctx.Err() != nil {
		return false, tab.ctx.Err()
	}
	runCtx, cancel := context.WithTimeout(tab.ctx, f.navTimeout)
	defer cancel()
	var title string
	err := chromedp.Run(runCtx, chromedp.Title(&title))
	return err == nil, err
}

// ActivateObject implements pool.Factory. Tabs need no preparation before
// reuse beyond what PassivateObject already did on the previous return.
func (f *Factory) ActivateObject(obj interface{}) error {
	if obj.(*Tab).ctx.Err() != nil {
		return errors.New("browserpool: tab context already cancelled")
	}
	return nil
}

// PassivateObject implements pool.Factory: navigating back to a blank page
// releases whatever memory/state the previous borrower's page held.
func (f *Factory) PassivateObject(obj interface{}) error {
	tab := obj.(*Tab)
	runCtx, cancel := context.WithTimeout(tab.ctx, f.navTimeout)
	defer cancel()
	return chromedp.Run(runCtx, navigate("about:blank"))
}
