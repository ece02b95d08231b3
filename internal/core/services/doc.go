// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The request path for one item is:
//
//	Dispatcher -> resource handler -> query encoder -> Requester -> normaliser
//
// Handlers build a domain.RequestSpec per item and never reuse it. All
// HTTP, binary storage and credential access goes through driven ports.
package services
