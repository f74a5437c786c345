package relay

import (
	"fmt"

	"github.com/zhouzirui/captain-jack/backend/internal/model/scenario"
)

// MessageRequest 是 POST /message 的请求体。指针字段用于区分缺省与空值。
type MessageRequest struct {
	Message   *string `json:"message"`
	ChildName *string `json:"child_name"`
	Scenario  *string `json:"scenario"`
}

// Message 是经过边界校验后的请求。
type Message struct {
	Text        string
	ChildName   string
	ScenarioKey string
}

// Validate 校验必填字段并填充默认值。message 只要求出现，允许为空串。
func (r MessageRequest) Validate() (Message, error) {
	if r.Message == nil {
		return Message{}, NewValidationError(fmt.Errorf("message is required"))
	}

	msg := Message{
		Text:        *r.Message,
		ScenarioKey: scenario.DefaultKey,
	}
	if r.ChildName != nil {
		msg.ChildName = *r.ChildName
	}
	if r.Scenario != nil {
		msg.ScenarioKey = *r.Scenario
	}
	return msg, nil
}

// HasChild 表示请求是否带有孩子的名字。
func (m Message) HasChild() bool {
	return m.ChildName != ""
}
