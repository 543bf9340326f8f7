package mailqueue

// Task is one unit of confirmation-mail work: send the confirmation
// message to this recipient. Tasks are held in memory only and are lost
// on process restart.
type Task struct {
	Recipient   string
	DisplayName string
}

// item wraps a Task on the internal queue. A stop item is the sentinel
// that tells the worker to exit after everything ahead of it has been
// processed.
type item struct {
	Task
	stop bool
}
