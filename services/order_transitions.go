package services

import "little-lemon-api/models"

// validStatusTransition reports whether an order may move between the two
// statuses. The lifecycle is one-way: a pending order can be delivered and
// a delivered order stays delivered. Setting the current status again is a
// no-op and allowed.
func validStatusTransition(from, to models.OrderStatus) bool {
	if from == to {
		return true
	}
	return from == models.StatusPending && to == models.StatusDelivered
}
