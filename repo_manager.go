package shop

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"
)

// RepositoryManager exposes all repositories
type RepositoryManager interface {
	repository.Validator
	repository.TransactionManager
	Credentials() Credentials
	Users() Users
	Customers() Customers
	Vehicles() Vehicles
	Inventory() Inventory
	WorkOrders() WorkOrders
	Appointments() Appointments
	Invoices() Invoices
}

type mngr struct {
	db           *bun.DB
	credentials  Credentials
	users        Users
	customers    Customers
	vehicles     Vehicles
	inventory    Inventory
	workOrders   WorkOrders
	appointments Appointments
	invoices     Invoices
}

func NewRepositoryManager(db *bun.DB) RepositoryManager {
	return &mngr{
		db:           db,
		credentials:  NewCredentialsRepository(db),
		users:        NewUsersRepository(db),
		customers:    NewCustomersRepository(db),
		vehicles:     NewVehiclesRepository(db),
		inventory:    NewInventoryRepository(db),
		workOrders:   NewWorkOrdersRepository(db),
		appointments: NewAppointmentsRepository(db),
		invoices:     NewInvoicesRepository(db),
	}
}

func (m mngr) Validate() error {
	if m.credentials == nil {
		return errors.New("repository credentials should be initialized")
	}

	if m.users == nil {
		return errors.New("repository users should be initialized")
	}

	if m.customers == nil {
		return errors.New("repository customers should be initialized")
	}

	if m.vehicles == nil {
		return errors.New("repository vehicles should be initialized")
	}

	if m.inventory == nil {
		return errors.New("repository inventory should be initialized")
	}

	if m.workOrders == nil {
		return errors.New("repository workOrders should be initialized")
	}

	if m.appointments == nil {
		return errors.New("repository appointments should be initialized")
	}

	if m.invoices == nil {
		return errors.New("repository invoices should be initialized")
	}

	return nil
}

func (m mngr) MustValidate() {
	if err := m.Validate(); err != nil {
		log.Panic(err)
	}
}

func (m mngr) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return m.db.RunInTx(ctx, opts, f)
	}
}

func (m mngr) Credentials() Credentials   { return m.credentials }
func (m mngr) Users() Users               { return m.users }
func (m mngr) Customers() Customers       { return m.customers }
func (m mngr) Vehicles() Vehicles         { return m.vehicles }
func (m mngr) Inventory() Inventory       { return m.inventory }
func (m mngr) WorkOrders() WorkOrders     { return m.workOrders }
func (m mngr) Appointments() Appointments { return m.appointments }
func (m mngr) Invoices() Invoices         { return m.invoices }
