package services

import (
	portsrepo "github.com/coinkeep/coinkeep_backend/internal/core/ports/repositories"
	portssvc "github.com/coinkeep/coinkeep_backend/internal/core/ports/services"
	"github.com/coinkeep/coinkeep_backend/internal/repositories/database/pgsql"
	"github.com/coinkeep/coinkeep_backend/internal/utils/periods"
)

// ServiceContainer holds every service facade the handlers depend on.
type ServiceContainer struct {
	Account     portssvc.AccountSvcFacade
	Transaction portssvc.TransactionSvcFacade
	Category    portssvc.CategorySvcFacade
	Budget      portssvc.BudgetSvcFacade
	Settings    portssvc.SettingsSvcFacade
	Sync        portssvc.SyncSvcFacade
	Reporting   portssvc.ReportingSvcFacade
}

// NewServiceContainer wires the services over a repository container.
func NewServiceContainer(repos *pgsql.RepositoryContainer, transport portssvc.SyncTransport, calendar periods.Calendar, syncConcurrency int) *ServiceContainer {
	var accountRepo portsrepo.AccountRepositoryFacade = repos.Account
	var txnRepo portsrepo.TransactionRepositoryFacade = repos.Transaction

	return &ServiceContainer{
		Account:     NewAccountServiceImpl(accountRepo),
		Transaction: NewTransactionServiceImpl(txnRepo, accountRepo),
		Category:    NewCategoryServiceImpl(repos.Category),
		Budget:      NewBudgetServiceImpl(repos.Budget, txnRepo, repos.Settings),
		Settings:    NewSettingsServiceImpl(repos.Settings),
		Sync:        NewSyncServiceImpl(txnRepo, accountRepo, transport, WithSyncConcurrency(syncConcurrency)),
		Reporting:   NewReportingServiceImpl(txnRepo, calendar),
	}
}
