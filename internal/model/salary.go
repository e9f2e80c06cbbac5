package model

type SalaryRank string

const (
	RankJunior SalaryRank = "junior"
	RankMid    SalaryRank = "mid"
	RankSenior SalaryRank = "senior"
)

// Salary tracks per-teacher rank counters. It is an independent aggregate
// adjusted only through the salary listener reacting to course-published and
// enrollment-created events.
type Salary struct {
	BaseModel
	TeacherID        uint       `gorm:"uniqueIndex;not null" json:"teacherId"`
	PublishedCourses int        `gorm:"default:0" json:"publishedCourses"`
	EnrollmentCount  int        `gorm:"default:0" json:"enrollmentCount"`
	Rank             SalaryRank `gorm:"type:enum('junior','mid','senior');default:'junior'" json:"rank"`
}

func (Salary) TableName() string {
	return "salaries"
}

func NewSalary(teacherID uint) *Salary {
	return &Salary{TeacherID: teacherID, Rank: RankJunior}
}

func (s *Salary) AddPublishedCourse() {
	s.PublishedCourses++
	s.recalcRank()
}

func (s *Salary) AddEnrollment() {
	s.EnrollmentCount++
	s.recalcRank()
}

func (s *Salary) recalcRank() {
	switch {
	case s.PublishedCourses >= 10 || s.EnrollmentCount >= 500:
		s.Rank = RankSenior
	case s.PublishedCourses >= 3 || s.EnrollmentCount >= 50:
		s.Rank = RankMid
	default:
		s.Rank = RankJunior
	}
}
