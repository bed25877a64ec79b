// Package store holds observable UI state for the web client.
//
// A Value is a single observable slot: readers call Get, writers call Set,
// and views call Subscribe to be told about every change. UIState groups the
// three values the client tracks for authentication UI:
//
//	state := store.NewUIState()
//	unsubscribe := state.ShowAuthModal.Subscribe(func(open bool) {
//		// re-render the modal
//	})
//	defer unsubscribe()
//
//	state.OpenAuthModal(store.AuthModeSignup)
//
// There is no process-wide default instance. Containers are constructed
// explicitly and handed to whatever needs them; the HTTP server keeps one
// UIState per browser session in a Registry.
package store
