package orders

const (
	TopicOrderPlaced  = "orders.placed"
	TopicOrderAmended = "orders.amended"
	TopicOrderStatus  = "orders.status"
)

// Partition key = order id, so all events for one order stay ordered.
func PartitionKey(orderID string) []byte { return []byte(orderID) }
