package app

import (
	"gorm.io/gorm"

	"github.com/daybook-app/daybook-backend/internal/platform/logger"
	"github.com/daybook-app/daybook-backend/internal/repos"
	"github.com/daybook-app/daybook-backend/internal/types"
)

// Repos holds one adapter per entity and tier. Entity repos come in
// local/remote pairs over the same implementation; preferences live
// only on the device, users and tokens only in the cloud.
type Repos struct {
	Preferences repos.PreferenceRepo

	LocalWallets      repos.WalletRepo
	LocalTransactions repos.TransactionRepo
	LocalBudgets      repos.BudgetRepo
	LocalAssignments  repos.BudgetAssignmentRepo
	LocalPages        repos.PageRepo
	LocalEvents       repos.EventRepo

	RemoteWallets      repos.WalletRepo
	RemoteTransactions repos.TransactionRepo
	RemoteBudgets      repos.BudgetRepo
	RemoteAssignments  repos.BudgetAssignmentRepo
	RemotePages        repos.PageRepo
	RemoteEvents       repos.EventRepo

	Users      repos.UserRepo
	UserTokens repos.UserTokenRepo
}

// wireRepos builds the full adapter set. remoteDB may be nil when the
// cloud store is unreachable at boot; remote adapters then fail per
// call with a recoverable error instead of keeping the app down.
func wireRepos(localDB, remoteDB *gorm.DB, log *logger.Logger) Repos {
	return Repos{
		Preferences: repos.NewPreferenceRepo(localDB, log),

		LocalWallets:      repos.NewWalletRepo(localDB, types.StoreTierLocal, log),
		LocalTransactions: repos.NewTransactionRepo(localDB, types.StoreTierLocal, log),
		LocalBudgets:      repos.NewBudgetRepo(localDB, types.StoreTierLocal, log),
		LocalAssignments:  repos.NewBudgetAssignmentRepo(localDB, types.StoreTierLocal, log),
		LocalPages:        repos.NewPageRepo(localDB, types.StoreTierLocal, log),
		LocalEvents:       repos.NewEventRepo(localDB, types.StoreTierLocal, log),

		RemoteWallets:      repos.NewWalletRepo(remoteDB, types.StoreTierRemote, log),
		RemoteTransactions: repos.NewTransactionRepo(remoteDB, types.StoreTierRemote, log),
		RemoteBudgets:      repos.NewBudgetRepo(remoteDB, types.StoreTierRemote, log),
		RemoteAssignments:  repos.NewBudgetAssignmentRepo(remoteDB, types.StoreTierRemote, log),
		RemotePages:        repos.NewPageRepo(remoteDB, types.StoreTierRemote, log),
		RemoteEvents:       repos.NewEventRepo(remoteDB, types.StoreTierRemote, log),

		Users:      repos.NewUserRepo(remoteDB, log),
		UserTokens: repos.NewUserTokenRepo(remoteDB, log),
	}
}
