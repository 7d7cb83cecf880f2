// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"dronefleet/internal/core/domain/model/kernel"
	"dronefleet/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Maps order domain entities to relational database tables with proper
// indexing for querying by status and drone assignment.
type OrderDTO struct {
	ID                 uuid.UUID      `gorm:"type:uuid;primaryKey"`
	CustomerID         uuid.UUID      `gorm:"type:uuid;not null;index"`
	RestaurantID       uuid.UUID      `gorm:"type:uuid;not null;index"`
	Destination        GeoPointDTO    `gorm:"embedded;embeddedPrefix:destination_"`
	DestinationAddress string         `gorm:"type:varchar(500);not null"`
	AmountCents        int64          `gorm:"type:bigint;not null"`
	Status             int            `gorm:"type:int;not null;index"`
	PaymentStatus      int            `gorm:"type:int;not null"`
	DroneID            *uuid.UUID     `gorm:"type:uuid;index"`
	Items              []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// GeoPointDTO represents the embedded delivery destination coordinates
// within the order table.
type GeoPointDTO struct {
	Latitude  float64 `gorm:"type:numeric"`
	Longitude float64 `gorm:"type:numeric"`
}

// OrderItemDTO represents one order line. An order holds at most one line
// per product, so the (order, product) pair is the natural key.
type OrderItemDTO struct {
	OrderID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Quantity  int       `gorm:"type:int;not null"`
}

// TableName specifies the database table name for order line entities.
// Overrides GORM's default naming convention to use "order_items".
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order domain aggregate to its database representation.
// Maps all order attributes including lines and the optional drone assignment.
func fromDomain(order *order.Order) OrderDTO {
	orderID := order.ID().Bytes()

	var droneID *uuid.UUID
	if id := order.DroneID(); id != nil {
		raw := id.Bytes()
		droneID = &raw
	}

	items := make([]OrderItemDTO, 0, len(order.Items()))
	for _, item := range order.Items() {
		items = append(items, OrderItemDTO{
			OrderID:   orderID,
			ProductID: item.ProductID().Bytes(),
			Quantity:  item.Quantity(),
		})
	}

	return OrderDTO{
		ID:           orderID,
		CustomerID:   order.CustomerID().Bytes(),
		RestaurantID: order.RestaurantID().Bytes(),
		Destination: GeoPointDTO{
			Latitude:  order.Destination().Latitude(),
			Longitude: order.Destination().Longitude(),
		},
		DestinationAddress: order.DestinationAddress(),
		AmountCents:        order.AmountCents(),
		Status:             int(order.Status()),
		PaymentStatus:      int(order.PaymentStatus()),
		DroneID:            droneID,
		Items:              items,
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including lines, both status machines,
// and the drone assignment using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}

	destination, err := kernel.NewGeoPoint(dto.Destination.Latitude, dto.Destination.Longitude)
	if err != nil {
		return nil, err
	}

	var droneID *kernel.UUID
	if dto.DroneID != nil {
		dID, droneErr := kernel.UUIDFromBytes((*dto.DroneID)[:])
		if droneErr != nil {
			return nil, droneErr
		}
		droneID = &dID
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDto := range dto.Items {
		item, itemErr := itemToDomain(itemDto)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		id,
		customerID,
		restaurantID,
		destination,
		dto.DestinationAddress,
		dto.AmountCents,
		items,
		order.Status(dto.Status),
		order.PaymentStatus(dto.PaymentStatus),
		droneID,
	)
}

// itemToDomain converts an order line DTO to the domain value object.
func itemToDomain(dto OrderItemDTO) (order.Item, error) {
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return order.Item{}, err
	}

	return order.NewItem(productID, dto.Quantity)
}
