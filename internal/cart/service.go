// Copyright (c) 2026 Bidaro. All rights reserved.
// Author: minh.tranvo.dev@gmail.com

package cart

import (
	"context"
	"log/slog"
	"sync"
)

// Manager owns the local cart mirror and its UI selection state.
//
// # Concurrency
//
// Safe for concurrent use. Mutations serialize on a dedicated lock held across
// the network call, enforcing the single-in-flight-mutation rule so rapid
// quantity clicks cannot interleave. Loads carry a monotonic sequence number;
// a response that arrives after a newer load (or after a clear) is discarded
// instead of overwriting fresher state.
type Manager struct {
	gateway Gateway
	log     *slog.Logger

	// mutationMu serializes AddOrUpdate/Remove cycles.
	mutationMu sync.Mutex

	mu       sync.RWMutex
	userID   string
	lines    []Line
	selected map[string]bool
	loadSeq  uint64
}

// NewManager constructs a cart [Manager] over the given gateway.
func NewManager(gateway Gateway, logger *slog.Logger) *Manager {
	return &Manager{
		gateway:  gateway,
		log:      logger,
		selected: map[string]bool{},
	}
}

// # Snapshot Loading

/*
Load replaces the entire local cart with the server snapshot.

Description: On success the selection defaults to all lines selected. On
failure the local cart is reset to empty, never left stale, and the error
is surfaced for display.

Parameters:
  - ctx: context.Context
  - userID: string (the authenticated identity the cart is bound to)

Returns:
  - error: FETCH_ERROR on retrieval failure
*/
func (manager *Manager) Load(ctx context.Context, userID string) error {
	return manager.load(ctx, userID, nil)
}

/*
LoadPreset replaces the local cart and restores a specific selection subset.

Description: Used by the buy-again flow: only the preset product IDs that
still exist in the fresh snapshot end up selected. An empty preset behaves
like [Manager.Load].

Parameters:
  - ctx: context.Context
  - userID: string
  - presetProductIDs: []string

Returns:
  - error: FETCH_ERROR on retrieval failure
*/
func (manager *Manager) LoadPreset(ctx context.Context, userID string, presetProductIDs []string) error {
	return manager.load(ctx, userID, presetProductIDs)
}

// load is the shared fetch-and-replace path with stale-response discarding.
func (manager *Manager) load(ctx context.Context, userID string, preset []string) error {

	// Claim a sequence slot before touching the wire.
	manager.mu.Lock()
	manager.loadSeq++
	sequence := manager.loadSeq
	manager.mu.Unlock()

	lines, err := manager.gateway.FetchLines(ctx, userID)

	manager.mu.Lock()
	defer manager.mu.Unlock()

	// A newer load (or a clear) superseded this response: drop it.
	if sequence != manager.loadSeq {
		manager.log.Debug("cart_stale_load_discarded",
			slog.String("user_id", userID),
			slog.Uint64("sequence", sequence),
		)
		return nil
	}

	if err != nil {
		// Reset rather than keep a stale copy.
		manager.userID = userID
		manager.lines = nil
		manager.selected = map[string]bool{}
		return err
	}

	manager.userID = userID
	manager.lines = lines
	manager.selected = buildSelection(lines, preset)

	return nil
}

// buildSelection defaults to all-selected, narrowed to the preset when given.
func buildSelection(lines []Line, preset []string) map[string]bool {
	selected := make(map[string]bool, len(lines))

	if len(preset) == 0 {
		for _, line := range lines {
			selected[line.ProductID] = true
		}
		return selected
	}

	wanted := make(map[string]bool, len(preset))
	for _, productID := range preset {
		wanted[productID] = true
	}

	// Only preset IDs that still exist in the cart are selected.
	for _, line := range lines {
		if wanted[line.ProductID] {
			selected[line.ProductID] = true
		}
	}

	return selected
}

// # Mutations

/*
AddOrUpdate adds a product or updates its quantity on the server.

Description: Does NOT mutate the local cart; the caller must follow with
[Manager.Load]. Deliberate: the server owns pricing, so optimistic local math
would drift.

Parameters:
  - ctx: context.Context
  - userID: string
  - productID: string
  - quantity: int

Returns:
  - error: ErrInvalidQuantity for quantity < 1 (no request issued),
    mutation failures otherwise
*/
func (manager *Manager) AddOrUpdate(ctx context.Context, userID, productID string, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	manager.mutationMu.Lock()
	defer manager.mutationMu.Unlock()

	return manager.gateway.AddItem(ctx, userID, productID, quantity)
}

/*
Remove removes a product from the server-side cart.

Description: Same no-local-mutation contract as [Manager.AddOrUpdate]; the
caller follows with [Manager.Load].

Parameters:
  - ctx: context.Context
  - userID: string
  - productID: string

Returns:
  - error: Mutation failures
*/
func (manager *Manager) Remove(ctx context.Context, userID, productID string) error {
	manager.mutationMu.Lock()
	defer manager.mutationMu.Unlock()

	return manager.gateway.RemoveItem(ctx, userID, productID)
}

/*
RemoveSelected removes every selected line, then reloads the snapshot.

Description: Removals run sequentially (single in-flight mutation), and one
refetch at the end restores consistency.

Returns:
  - error: The first removal failure, or the trailing load failure
*/
func (manager *Manager) RemoveSelected(ctx context.Context) error {
	manager.mu.RLock()
	userID := manager.userID
	productIDs := make([]string, 0, len(manager.selected))
	for _, line := range manager.lines {
		if manager.selected[line.ProductID] {
			productIDs = append(productIDs, line.ProductID)
		}
	}
	manager.mu.RUnlock()

	for _, productID := range productIDs {
		if err := manager.Remove(ctx, userID, productID); err != nil {
			return err
		}
	}

	return manager.Load(ctx, userID)
}

/*
RemovePurchased removes the given product lines after a checkout, then reloads.

Description: Only invoked when post-checkout clearing is explicitly enabled;
by default the backend owns cart clearing through its payment webhook.
*/
func (manager *Manager) RemovePurchased(ctx context.Context, userID string, productIDs []string) error {
	for _, productID := range productIDs {
		if err := manager.Remove(ctx, userID, productID); err != nil {
			return err
		}
	}

	return manager.Load(ctx, userID)
}

// Clear wipes the local mirror without any network call. Used on logout.
//
// The sequence bump makes any in-flight load land stale, so a logout can
// never be trailed by a resurrected cart.
func (manager *Manager) Clear() {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	manager.loadSeq++
	manager.userID = ""
	manager.lines = nil
	manager.selected = map[string]bool{}
}

// # Session Binding

// OnAuthenticated implements the session's cart binding: load the cart for
// the freshly authenticated identity.
func (manager *Manager) OnAuthenticated(ctx context.Context, userID string) error {
	return manager.Load(ctx, userID)
}

// OnLoggedOut implements the session's cart binding: local wipe only.
func (manager *Manager) OnLoggedOut() {
	manager.Clear()
}

// # Observers

// UserID returns the identity the mirror is currently bound to, or "".
func (manager *Manager) UserID() string {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	return manager.userID
}

// Lines returns a copy of the current snapshot in server order.
func (manager *Manager) Lines() []Line {
	manager.mu.RLock()
	defer manager.mu.RUnlock()

	lines := make([]Line, len(manager.lines))
	copy(lines, manager.lines)
	return lines
}

// Len returns the number of lines in the snapshot.
func (manager *Manager) Len() int {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	return len(manager.lines)
}

// Subtotal returns the server-priced total across all lines.
func (manager *Manager) Subtotal() float64 {
	manager.mu.RLock()
	defer manager.mu.RUnlock()

	var total float64
	for _, line := range manager.lines {
		total += line.Subtotal()
	}
	return total
}

// # Selection (pure UI state, never persisted)

// IsSelected reports whether the given product is in the checkout subset.
func (manager *Manager) IsSelected(productID string) bool {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	return manager.selected[productID]
}

// Select adds a product to the checkout subset.
func (manager *Manager) Select(productID string) {
	manager.setSelected(productID, true)
}

// Deselect removes a product from the checkout subset.
func (manager *Manager) Deselect(productID string) {
	manager.setSelected(productID, false)
}

// Toggle flips a product's membership in the checkout subset.
func (manager *Manager) Toggle(productID string) {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	if manager.selected[productID] {
		delete(manager.selected, productID)
		return
	}
	if manager.hasLine(productID) {
		manager.selected[productID] = true
	}
}

// SelectAll marks every line as selected.
func (manager *Manager) SelectAll() {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	for _, line := range manager.lines {
		manager.selected[line.ProductID] = true
	}
}

// DeselectAll empties the checkout subset.
func (manager *Manager) DeselectAll() {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	manager.selected = map[string]bool{}
}

// SelectedLines returns the selected subset in server order.
func (manager *Manager) SelectedLines() []Line {
	manager.mu.RLock()
	defer manager.mu.RUnlock()

	var lines []Line
	for _, line := range manager.lines {
		if manager.selected[line.ProductID] {
			lines = append(lines, line)
		}
	}
	return lines
}

// SelectedSubtotal returns the server-priced total across the selected subset.
func (manager *Manager) SelectedSubtotal() float64 {
	var total float64
	for _, line := range manager.SelectedLines() {
		total += line.Subtotal()
	}
	return total
}

// setSelected commits one selection flag, refusing IDs not in the cart.
func (manager *Manager) setSelected(productID string, on bool) {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	if !on {
		delete(manager.selected, productID)
		return
	}
	if manager.hasLine(productID) {
		manager.selected[productID] = true
	}
}

// hasLine reports whether the snapshot contains the product. Caller holds mu.
func (manager *Manager) hasLine(productID string) bool {
	for _, line := range manager.lines {
		if line.ProductID == productID {
			return true
		}
	}
	return false
}
