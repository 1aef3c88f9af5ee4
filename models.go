package shop

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Credential is the authentication record: email plus password hash.
// It never leaves the server; the business-facing record is User.
type Credential struct {
	bun.BaseModel `bun:"table:auth_users,alias:cred"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Email         string     `bun:"email,notnull,unique" json:"email,omitempty"`
	PasswordHash  string     `bun:"password_hash,notnull" json:"-"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// User is the profile record, linked 1:1 to a Credential
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	CredentialID  uuid.UUID  `bun:"user_id,notnull,type:uuid" json:"user_id,omitempty"`
	Email         string     `bun:"email,notnull" json:"email,omitempty"`
	FullName      string     `bun:"full_name,notnull" json:"full_name,omitempty"`
	Role          UserRole   `bun:"role,notnull" json:"role,omitempty"`
	Phone         string     `bun:"phone" json:"phone,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// Customer is a shop customer
type Customer struct {
	bun.BaseModel `bun:"table:customers,alias:cust"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Name          string     `bun:"name,notnull" json:"name,omitempty"`
	Email         string     `bun:"email" json:"email,omitempty"`
	Phone         string     `bun:"phone,notnull" json:"phone,omitempty"`
	Address       string     `bun:"address" json:"address,omitempty"`
	Notes         string     `bun:"notes" json:"notes,omitempty"`
	Vehicles      []*Vehicle `bun:"rel:has-many,join:id=customer_id" json:"vehicles,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// Vehicle belongs to a Customer
type Vehicle struct {
	bun.BaseModel `bun:"table:vehicles,alias:veh"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	CustomerID    uuid.UUID  `bun:"customer_id,notnull,type:uuid" json:"customer_id,omitempty"`
	Make          string     `bun:"make,notnull" json:"make,omitempty"`
	Model         string     `bun:"model,notnull" json:"model,omitempty"`
	Year          int        `bun:"year,notnull" json:"year,omitempty"`
	LicensePlate  string     `bun:"license_plate" json:"license_plate,omitempty"`
	VIN           string     `bun:"vin" json:"vin,omitempty"`
	Color         string     `bun:"color" json:"color,omitempty"`
	Notes         string     `bun:"notes" json:"notes,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// InventoryItem is a stocked part or consumable
type InventoryItem struct {
	bun.BaseModel `bun:"table:inventory,alias:inv"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Name          string     `bun:"name,notnull" json:"name,omitempty"`
	SKU           string     `bun:"sku,notnull,unique" json:"sku,omitempty"`
	Description   string     `bun:"description" json:"description,omitempty"`
	StockQuantity int        `bun:"stock_quantity,default:0" json:"stock_quantity"`
	MinStockLevel int        `bun:"min_stock_level,default:10" json:"min_stock_level"`
	UnitPrice     float64    `bun:"unit_price,default:0" json:"unit_price"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// WorkOrderStatus values for WorkOrder.Status
type WorkOrderStatus = string

const (
	WorkOrderPending    WorkOrderStatus = "pending"
	WorkOrderInProgress WorkOrderStatus = "in_progress"
	WorkOrderCompleted  WorkOrderStatus = "completed"
	WorkOrderCancelled  WorkOrderStatus = "cancelled"
)

// WorkOrderPriority values for WorkOrder.Priority
type WorkOrderPriority = string

const (
	PriorityLow    WorkOrderPriority = "low"
	PriorityMedium WorkOrderPriority = "medium"
	PriorityHigh   WorkOrderPriority = "high"
	PriorityUrgent WorkOrderPriority = "urgent"
)

// WorkOrder is a unit of shop work against a customer's vehicle
type WorkOrder struct {
	bun.BaseModel       `bun:"table:work_orders,alias:wo"`
	ID                  uuid.UUID        `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	CustomerID          uuid.UUID        `bun:"customer_id,notnull,type:uuid" json:"customer_id,omitempty"`
	VehicleID           uuid.UUID        `bun:"vehicle_id,notnull,type:uuid" json:"vehicle_id,omitempty"`
	AssignedTo          *uuid.UUID       `bun:"assigned_to,type:uuid" json:"assigned_to,omitempty"`
	Title               string           `bun:"title,notnull" json:"title,omitempty"`
	Description         string           `bun:"description" json:"description,omitempty"`
	Status              WorkOrderStatus  `bun:"status,notnull,default:'pending'" json:"status,omitempty"`
	Priority            WorkOrderPriority `bun:"priority,default:'medium'" json:"priority,omitempty"`
	EstimatedHours      float64          `bun:"estimated_hours,default:0" json:"estimated_hours"`
	ActualHours         float64          `bun:"actual_hours,default:0" json:"actual_hours"`
	LaborRate           float64          `bun:"labor_rate,default:75.00" json:"labor_rate"`
	EstimatedCompletion *time.Time       `bun:"estimated_completion,nullzero" json:"estimated_completion,omitempty"`
	CompletedAt         *time.Time       `bun:"completed_at,nullzero" json:"completed_at,omitempty"`
	Items               []*WorkOrderItem `bun:"rel:has-many,join:id=work_order_id" json:"items,omitempty"`
	CreatedAt           *time.Time       `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt           *time.Time       `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// WorkOrderItem is a part drawn from inventory for a work order.
// TotalPrice is a stored generated column, never written by the app.
type WorkOrderItem struct {
	bun.BaseModel `bun:"table:work_order_items,alias:woi"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	WorkOrderID   uuid.UUID  `bun:"work_order_id,type:uuid" json:"work_order_id,omitempty"`
	InventoryID   *uuid.UUID `bun:"inventory_id,type:uuid" json:"inventory_id,omitempty"`
	Quantity      int        `bun:"quantity,notnull,default:1" json:"quantity"`
	UnitPrice     float64    `bun:"unit_price,notnull" json:"unit_price"`
	TotalPrice    float64    `bun:"total_price,scanonly" json:"total_price"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
}

// AppointmentStatus values for Appointment.Status
type AppointmentStatus = string

const (
	AppointmentScheduled  AppointmentStatus = "scheduled"
	AppointmentConfirmed  AppointmentStatus = "confirmed"
	AppointmentInProgress AppointmentStatus = "in_progress"
	AppointmentCompleted  AppointmentStatus = "completed"
	AppointmentCancelled  AppointmentStatus = "cancelled"
)

// Appointment is a scheduled customer visit
type Appointment struct {
	bun.BaseModel   `bun:"table:appointments,alias:appt"`
	ID              uuid.UUID         `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	CustomerID      uuid.UUID         `bun:"customer_id,notnull,type:uuid" json:"customer_id,omitempty"`
	VehicleID       uuid.UUID         `bun:"vehicle_id,notnull,type:uuid" json:"vehicle_id,omitempty"`
	AssignedTo      *uuid.UUID        `bun:"assigned_to,type:uuid" json:"assigned_to,omitempty"`
	Title           string            `bun:"title,notnull" json:"title,omitempty"`
	Description     string            `bun:"description" json:"description,omitempty"`
	AppointmentDate time.Time         `bun:"appointment_date,notnull" json:"appointment_date"`
	DurationMinutes int               `bun:"duration_minutes,default:60" json:"duration_minutes"`
	Status          AppointmentStatus `bun:"status,default:'scheduled'" json:"status,omitempty"`
	CreatedAt       *time.Time        `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt       *time.Time        `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// InvoiceStatus values for Invoice.Status
type InvoiceStatus = string

const (
	InvoiceDraft     InvoiceStatus = "draft"
	InvoiceSent      InvoiceStatus = "sent"
	InvoicePaid      InvoiceStatus = "paid"
	InvoiceOverdue   InvoiceStatus = "overdue"
	InvoiceCancelled InvoiceStatus = "cancelled"
)

// Invoice bills a completed work order
type Invoice struct {
	bun.BaseModel `bun:"table:invoices,alias:invc"`
	ID            uuid.UUID     `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	WorkOrderID   uuid.UUID     `bun:"work_order_id,notnull,type:uuid" json:"work_order_id,omitempty"`
	CustomerID    uuid.UUID     `bun:"customer_id,notnull,type:uuid" json:"customer_id,omitempty"`
	InvoiceNumber string        `bun:"invoice_number,notnull,unique" json:"invoice_number,omitempty"`
	Subtotal      float64       `bun:"subtotal,default:0" json:"subtotal"`
	TaxRate       float64       `bun:"tax_rate,default:8.25" json:"tax_rate"`
	TaxAmount     float64       `bun:"tax_amount,default:0" json:"tax_amount"`
	TotalAmount   float64       `bun:"total_amount,default:0" json:"total_amount"`
	Status        InvoiceStatus `bun:"status,default:'draft'" json:"status,omitempty"`
	IssuedDate    *time.Time    `bun:"issued_date,nullzero" json:"issued_date,omitempty"`
	DueDate       *time.Time    `bun:"due_date,nullzero" json:"due_date,omitempty"`
	PaidDate      *time.Time    `bun:"paid_date,nullzero" json:"paid_date,omitempty"`
	Notes         string        `bun:"notes" json:"notes,omitempty"`
	CreatedAt     *time.Time    `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time    `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}
