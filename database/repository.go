package database

// Repository is the data-access layer over the store. All reads translate
// rows into domain models; all writes report the touched tables to the
// notifier so live subscriptions re-run their queries.
type Repository struct {
	db       *DB
	notifier *Notifier
}

func NewRepository(db *DB) *Repository {
	return &Repository{db: db, notifier: NewNotifier()}
}

// Notifier exposes the change registry, mainly for tests and for composing
// additional live queries outside the repository.
func (r *Repository) Notifier() *Notifier {
	return r.notifier
}

// Checkpoint flushes the write-ahead log. See DB.Checkpoint.
func (r *Repository) Checkpoint() error {
	return r.db.Checkpoint()
}
