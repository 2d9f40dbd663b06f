// Package job runs wizard background work on River, a Postgres-native queue.
//
// Two kinds of tasks are supported. Regular tasks receive a JSON payload and
// are enqueued by name; scheduled tasks run on a cron expression. Both are
// plain structs, matched structurally:
//
//	type NotifyCaseworker struct{ mailer Mailer }
//
//	func (t *NotifyCaseworker) Name() string { return "notify_caseworker" }
//
//	func (t *NotifyCaseworker) Handle(ctx context.Context, p job.Completion) error {
//	    return t.mailer.Send(ctx, p.Values["email"])
//	}
//
// The package ships the tasks a wizard deployment needs:
//
//   - [CompletionTask] receives a [Completion] every time a wizard step
//     emits its complete signal.
//   - [SessionCleanup] periodically removes expired sessions from stores that
//     implement session.Cleaner.
//
// Wiring:
//
//	if err := job.Migrate(ctx, pool, logger); err != nil {
//	    return err
//	}
//
//	manager, err := job.NewManager(pool,
//	    job.WithTask[job.Completion](job.NewCompletionTask(onCompleted)),
//	    job.WithScheduledTask(job.NewSessionCleanup(store, "*/15 * * * *", logger)),
//	    job.WithLogger(logger),
//	)
//
//	// later, from a completion listener
//	err = job.EnqueueCompletion(ctx, manager, job.Completion{...})
//
// Jobs can be enqueued inside a transaction with EnqueueTx; they become
// visible after commit. Uniqueness is scoped to the task name and the key
// given with [UniqueKey].
package job
