package task

// Task is the sole persistent entity: one row in the tasks table.
// The store assigns the ID on creation; it is never reused or reassigned.
type Task struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Title  string `gorm:"not null;type:varchar(255)" json:"title"`
	Status string `gorm:"type:varchar(64)" json:"status"`
}

// TableName returns the table name for the Task entity.
func (Task) TableName() string {
	return "tasks"
}
