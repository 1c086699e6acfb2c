package model

import "terralot/pkg/lifecycle"

// TaskLifecycle is the transition table the task form enforces before
// writing a status change.
func TaskLifecycle() *lifecycle.Machine[TaskStatus] {
	return lifecycle.New(map[TaskStatus][]TaskStatus{
		TaskPending:    {TaskInProgress, TaskCompleted, TaskCancelled},
		TaskInProgress: {TaskPending, TaskCompleted, TaskCancelled},
		// Reopening returns the task to pending, never straight to
		// in-progress.
		TaskCompleted: {TaskPending},
		TaskCancelled: {TaskPending},
	})
}

// CropLifecycle is the transition table for crop cycles.
func CropLifecycle() *lifecycle.Machine[CropStatus] {
	return lifecycle.New(map[CropStatus][]CropStatus{
		CropPlanned:    {CropInProgress, CropFailed},
		CropInProgress: {CropHarvested, CropFailed},
		CropHarvested:  {CropCompleted},
	})
}
