package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoard_DetectWin(t *testing.T) {
	t.Run("Every fixed line is detected", func(t *testing.T) {
		for _, combo := range WinCombos {
			// Given: a board where only the combo cells hold O
			var board Board
			for _, idx := range combo {
				board[idx] = O
			}

			// When: detecting a win
			win, ok := board.DetectWin()

			// Then: the combo should be reported as the winning line
			require.True(t, ok, "line %v", combo)
			assert.Equal(t, WinInfo{Mark: O, Line: combo}, win)
		}
	})

	t.Run("Returns nothing on an empty board", func(t *testing.T) {
		// Given: an empty board
		var board Board

		// When: detecting a win
		_, ok := board.DetectWin()

		// Then: no win should be reported
		assert.False(t, ok)
	})

	t.Run("Returns nothing for a full board without lines", func(t *testing.T) {
		// Given: a drawn board
		board := Board{
			X, O, X,
			X, O, O,
			O, X, X,
		}

		// When: detecting a win
		_, ok := board.DetectWin()

		// Then: no win should be reported
		assert.False(t, ok)
	})

	t.Run("Earliest line wins when several are complete", func(t *testing.T) {
		// Given: X completes the top row and the first column
		board := Board{
			X, X, X,
			X, O, O,
			X, O, O,
		}

		// When: detecting a win
		win, ok := board.DetectWin()

		// Then: the top row should be reported because rows are checked first
		require.True(t, ok)
		assert.Equal(t, [3]int{0, 1, 2}, win.Line)
	})

	t.Run("Diagonals are checked after columns", func(t *testing.T) {
		// Given: O completes the anti-diagonal and the right column
		board := Board{
			X, X, O,
			X, O, O,
			O, Empty, O,
		}

		// When: detecting a win
		win, ok := board.DetectWin()

		// Then: the right column should be reported
		require.True(t, ok)
		assert.Equal(t, WinInfo{Mark: O, Line: [3]int{2, 5, 8}}, win)
	})
}

func TestBoard_IsFullAndIsTie(t *testing.T) {
	t.Run("Empty board is neither full nor tied", func(t *testing.T) {
		var board Board

		assert.False(t, board.IsFull())
		assert.False(t, board.IsTie())
	})

	t.Run("Full board without lines is a tie", func(t *testing.T) {
		board := Board{
			X, O, X,
			X, O, O,
			O, X, X,
		}

		assert.True(t, board.IsFull())
		assert.True(t, board.IsTie())
	})

	t.Run("Full board with a line is not a tie", func(t *testing.T) {
		board := Board{
			X, O, X,
			O, X, O,
			O, X, X,
		}

		assert.True(t, board.IsFull())
		assert.False(t, board.IsTie())
	})
}

func TestMark_Opponent(t *testing.T) {
	assert.Equal(t, O, X.Opponent())
	assert.Equal(t, X, O.Opponent())
}

func TestNewGame(t *testing.T) {
	// When: create a new game
	game := NewGame()

	// Then: the board is empty and X moves first
	expectedGame := &Game{
		Board: Board{Empty, Empty, Empty, Empty, Empty, Empty, Empty, Empty, Empty},
		Turn:  X,
	}

	require.Equal(t, expectedGame, game)
	assert.Equal(t, StateInProgress, game.State())
	assert.False(t, game.IsFinished())
}

func TestGame_Reset(t *testing.T) {
	// Given: a finished game with O to move
	game := &Game{
		Board: Board{X, X, X, O, O, Empty, Empty, Empty, Empty},
		Turn:  O,
	}

	// When: resetting twice
	game.Reset()
	once := *game
	game.Reset()

	// Then: the game is back to its initial state and the second reset changes nothing
	assert.Equal(t, *NewGame(), once)
	assert.Equal(t, once, *game)
}

func TestGame_State(t *testing.T) {
	t.Run("Won", func(t *testing.T) {
		game := &Game{Board: Board{O, O, O, X, X, Empty, X, Empty, Empty}, Turn: X}

		assert.Equal(t, StateWon, game.State())
		assert.True(t, game.IsFinished())
	})

	t.Run("Tied", func(t *testing.T) {
		game := &Game{Board: Board{X, O, X, X, O, O, O, X, X}, Turn: O}

		assert.Equal(t, StateTied, game.State())
		assert.True(t, game.IsFinished())
	})
}

func TestProjectStatus(t *testing.T) {
	t.Run("Current player", func(t *testing.T) {
		// Given: X has played the first cell
		board := Board{X}

		// When: projecting the status with O to move
		status := ProjectStatus(board, O)

		// Then: the status names the next player
		assert.Equal(t, DisplayStatus{Kind: StatusTurn, Mark: O}, status)
		assert.Equal(t, "Current player: O", status.String())
	})

	t.Run("Winner", func(t *testing.T) {
		board := Board{X, X, X, O, O}

		status := ProjectStatus(board, O)

		assert.Equal(t, "Winner: X", status.String())
	})

	t.Run("Tie", func(t *testing.T) {
		board := Board{X, O, X, X, O, O, O, X, X}

		status := ProjectStatus(board, O)

		assert.Equal(t, DisplayStatus{Kind: StatusTie}, status)
		assert.Equal(t, "Tie", status.String())
	})

	t.Run("JSON carries the text", func(t *testing.T) {
		status := DisplayStatus{Kind: StatusWinner, Mark: O}

		data, err := status.MarshalJSON()
		require.NoError(t, err)
		assert.JSONEq(t, `{"kind":"winner","mark":"O","text":"Winner: O"}`, string(data))

		var decoded DisplayStatus
		require.NoError(t, decoded.UnmarshalJSON(data))
		assert.Equal(t, status, decoded)
	})
}

func TestNewSnapshot(t *testing.T) {
	t.Run("Winning cells are highlighted and nothing is playable", func(t *testing.T) {
		// Given: X owns the left column
		board := Board{
			X, O, Empty,
			X, O, Empty,
			X, Empty, Empty,
		}

		// When: building the snapshot
		snapshot := NewSnapshot(board, O)

		// Then: the win is reported with its line
		require.NotNil(t, snapshot.Win)
		assert.Equal(t, WinInfo{Mark: X, Line: [3]int{0, 3, 6}}, *snapshot.Win)
		assert.Equal(t, StateWon, snapshot.State)
		assert.False(t, snapshot.Full)

		for i, cell := range snapshot.Cells {
			assert.Equal(t, i == 0 || i == 3 || i == 6, cell.Winning, "cell %d", i)
			assert.False(t, cell.Playable, "cell %d", i)
		}
	})

	t.Run("Only empty cells are playable while in progress", func(t *testing.T) {
		board := Board{X}

		snapshot := NewSnapshot(board, O)

		assert.Nil(t, snapshot.Win)
		assert.Equal(t, StateInProgress, snapshot.State)
		assert.False(t, snapshot.Cells[0].Playable)
		for i := 1; i < BoardSize; i++ {
			assert.True(t, snapshot.Cells[i].Playable, "cell %d", i)
		}
	})

	t.Run("Tied board", func(t *testing.T) {
		board := Board{X, O, X, X, O, O, O, X, X}

		snapshot := NewSnapshot(board, O)

		assert.Equal(t, StateTied, snapshot.State)
		assert.True(t, snapshot.Full)
		assert.Equal(t, "Tie", snapshot.Status.String())
	})
}

func TestIsValidCell(t *testing.T) {
	assert.True(t, IsValidCell(0))
	assert.True(t, IsValidCell(8))
	assert.False(t, IsValidCell(-1))
	assert.False(t, IsValidCell(9))
}
