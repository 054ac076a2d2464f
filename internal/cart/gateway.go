// Copyright (c) 2026 Bidaro. All rights reserved.
// Author: minh.tranvo.dev@gmail.com

package cart

import "context"

// # Remote Contract

// Gateway defines the remote cart contract.
type Gateway interface {

	/*
		FetchLines returns the full server-side cart for the given user.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - []Line: The complete snapshot, possibly empty
		  - error: Retrieval failures
	*/
	FetchLines(context context.Context, userID string) ([]Line, error)

	/*
		AddItem adds or updates one product in the server-side cart.

		Description: Fire-and-refetch; the response body carries no usable
		snapshot; the caller must follow with FetchLines.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - productID: string
		  - quantity: int (>= 1, validated by the manager)

		Returns:
		  - error: Mutation failures
	*/
	AddItem(context context.Context, userID, productID string, quantity int) error

	/*
		RemoveItem removes one product from the server-side cart.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - productID: string

		Returns:
		  - error: Mutation failures
	*/
	RemoveItem(context context.Context, userID, productID string) error
}
