package taskpool

import "github.com/nwcmb/taskpool/internal/cerr"

// ErrTaskPanic wraps any panic recovered from a unit callback. The task's
// exception slot stores the wrapped error; it surfaces from [Task.Wait]
// exactly like an error the callback returned directly.
const ErrTaskPanic = cerr.Error("taskpool: unit callback panicked")
