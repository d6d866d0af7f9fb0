package queue

// PreProcessor is a custom function that can be added to the Pool.
// This function is executed on task ids BEFORE they are pushed onto the
// queue, and can be used to reject tasks before any worker sees them.
// If this function returns an error, then the task is rejected and
// Submit fails.
//
// PreProcessor is useful for defining centralized rules that apply to all
// tasks, for instance: refusing ids that no store could ever resolve.
type PreProcessor func(taskID int) error
