//nolint:gochecknoglobals
package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	loginsMetric = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "painel",
		Name:      "logins",
		Help:      "The total number of login attempts",
	}, []string{"result"})

	taskOpsMetric = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "painel",
		Name:      "task_ops",
		Help:      "The total number of task lifecycle operations",
	}, []string{"op"})

	missionsMetric = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "painel",
		Name:      "missions",
		Help:      "The total number of mission changes",
	}, []string{"op"})
)
