package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	UsersRegistered prometheus.Counter
	Logins          prometheus.Counter
	PostsCreated    prometheus.Counter
	LikesRecorded   prometheus.Counter
	CommentsAdded   prometheus.Counter
}

// New creates and registers all metrics against the given registerer. Tests
// pass a fresh registry; main passes prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		UsersRegistered: factory.NewCounter(prometheus.CounterOpts{
			Name: "devconnect_users_registered_total",
			Help: "Total number of users registered in the system",
		}),
		Logins: factory.NewCounter(prometheus.CounterOpts{
			Name: "devconnect_logins_total",
			Help: "Total number of successful logins",
		}),
		PostsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "devconnect_posts_created_total",
			Help: "Total number of posts created",
		}),
		LikesRecorded: factory.NewCounter(prometheus.CounterOpts{
			Name: "devconnect_likes_total",
			Help: "Total number of post likes recorded",
		}),
		CommentsAdded: factory.NewCounter(prometheus.CounterOpts{
			Name: "devconnect_comments_total",
			Help: "Total number of comments added to posts",
		}),
	}
}

// IncUsersRegistered increments the registration counter. Nil-safe so services
// can run without metrics in tests.
func (m *Metrics) IncUsersRegistered() {
	if m != nil {
		m.UsersRegistered.Inc()
	}
}

func (m *Metrics) IncLogins() {
	if m != nil {
		m.Logins.Inc()
	}
}

func (m *Metrics) IncPostsCreated() {
	if m != nil {
		m.PostsCreated.Inc()
	}
}

func (m *Metrics) IncLikesRecorded() {
	if m != nil {
		m.LikesRecorded.Inc()
	}
}

func (m *Metrics) IncCommentsAdded() {
	if m != nil {
		m.CommentsAdded.Inc()
	}
}
