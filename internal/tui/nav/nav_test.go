package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMsgNavigator(t *testing.T) {
	var n Navigator = MsgNavigator{}

	assert.Equal(t, NavigateMsg{To: Root}, n.Navigate(Root)())
	assert.Equal(t, NavigateMsg{To: Detail}, n.Navigate(Detail)())
}
