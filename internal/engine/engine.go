package engine

import (
	"snapshot-qa/internal/database"
	"snapshot-qa/internal/engine/actors"
	"snapshot-qa/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
)

// Engine coordinates communication between actors
type Engine struct {
	userSupervisor *actor.PID
	questionActor  *actor.PID
}

func NewEngine(system *actor.ActorSystem, metrics *utils.MetricsCollector, store database.Store) *Engine {
	context := system.Root

	// Spawn user supervisor
	userProps := actor.PropsFromProducer(func() actor.Actor {
		return actors.NewUserSupervisor(store)
	})
	userPID := context.Spawn(userProps)

	// Spawn question actor
	questionProps := actor.PropsFromProducer(func() actor.Actor {
		return actors.NewQuestionActor(metrics, store)
	})
	questionPID := context.Spawn(questionProps)

	return &Engine{
		userSupervisor: userPID,
		questionActor:  questionPID,
	}
}

// GetUserSupervisor returns the PID of the user supervisor
func (e *Engine) GetUserSupervisor() *actor.PID {
	return e.userSupervisor
}

// GetQuestionActor returns the PID of the question actor
func (e *Engine) GetQuestionActor() *actor.PID {
	return e.questionActor
}
