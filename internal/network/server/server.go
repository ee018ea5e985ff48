package server

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/denmor86/ya-cryptowallet/internal/commands"
	"github.com/denmor86/ya-cryptowallet/internal/config"
	"github.com/denmor86/ya-cryptowallet/internal/logger"
	"github.com/denmor86/ya-cryptowallet/internal/models"
)

const DefaultBufferSize = 64 * 1024

// CommandExecutor - диспетчер команд, вызывается только из цикла событий
type CommandExecutor interface {
	Execute(ctx context.Context, command commands.Command, session *models.Session) (commands.Result, error)
	Disconnect(session *models.Session)
}

type eventKind int

const (
	eventAccept eventKind = iota
	eventData
	eventClosed
)

// event - всё, что горутины ввода передают циклу событий.
// Для eventData line - одна полная строка без перевода строки.
type event struct {
	kind    eventKind
	id      uint64
	conn    net.Conn
	line    string
	tooLong bool
	err     error
}

// connection - соединение и его сессия, принадлежат циклу событий
type connection struct {
	conn    net.Conn
	session *models.Session
}

// Server - мультиплексор соединений. Горутины приёма и чтения только
// перекладывают байты в канал events; сессии, диспетчер и запись в сокеты
// принадлежат одной горутине Serve.
type Server struct {
	Config   config.ServerConfig
	Executor CommandExecutor

	listener net.Listener
	events   chan event
	done     chan struct{}
	once     sync.Once
	readers  sync.WaitGroup

	conns  map[uint64]*connection
	nextID atomic.Uint64
	active atomic.Int64
}

func NewServer(cfg config.ServerConfig, executor CommandExecutor) *Server {
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = DefaultBufferSize
	}
	return &Server{
		Config:   cfg,
		Executor: executor,
		events:   make(chan event),
		done:     make(chan struct{}),
		conns:    make(map[uint64]*connection),
	}
}

// Listen - открытие слушающего сокета, ошибка здесь фатальна
func (s *Server) Listen() error {
	listener, err := net.Listen("tcp", s.Config.ListenAddr)
	if err != nil {
		return fmt.Errorf("failed to listen %s: %w", s.Config.ListenAddr, err)
	}
	s.listener = listener
	return nil
}

// Addr - фактический адрес после Listen
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Connections - число живых соединений
func (s *Server) Connections() int64 {
	return s.active.Load()
}

func (s *Server) Run(ctx context.Context) error {
	if err := s.Listen(); err != nil {
		return err
	}
	return s.Serve(ctx)
}

// Serve - цикл событий. Завершается, когда после отключения не осталось
// клиентов, по SHUTDOWN без других клиентов, по отмене ctx или при сбое
// хранилища (тогда возвращается ошибка).
func (s *Server) Serve(ctx context.Context) error {
	if s.listener == nil {
		return errors.New("server is not listening")
	}
	logger.Info("Server listening on", s.listener.Addr().String())
	go s.acceptLoop()
	defer s.stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Server context done")
			return nil
		case ev := <-s.events:
			stop, err := s.handle(ctx, ev)
			if err != nil {
				return err
			}
			if stop {
				return nil
			}
		}
	}
}

func (s *Server) handle(ctx context.Context, ev event) (bool, error) {
	switch ev.kind {
	case eventAccept:
		s.accept(ev)
		return false, nil
	case eventClosed:
		c, ok := s.conns[ev.id]
		if !ok {
			return false, nil
		}
		if ev.err != nil && !isDisconnect(ev.err) {
			logger.Warn("Client read error", c.session.RemoteAddr, ev.err)
		}
		return s.disconnect(c), nil
	case eventData:
		c, ok := s.conns[ev.id]
		if !ok {
			return false, nil
		}
		return s.serveLine(ctx, c, ev)
	}
	return false, nil
}

func (s *Server) accept(ev event) {
	session := models.NewSession(ev.id, ev.conn.RemoteAddr().String())
	c := &connection{conn: ev.conn, session: session}
	s.conns[ev.id] = c
	s.active.Add(1)
	logger.Infow("Client connected", "id", ev.id, "addr", session.RemoteAddr, "clients", len(s.conns))

	s.readers.Add(1)
	go s.readLoop(ev.id, ev.conn)
}

// serveLine - ответ на одну строку клиента до перехода к следующему событию
func (s *Server) serveLine(ctx context.Context, c *connection, ev event) (bool, error) {
	var (
		result commands.Result
		err    error
	)
	if ev.tooLong {
		logger.Warn("Client line exceeds buffer size", c.session.RemoteAddr, s.Config.BufferSize)
		result = commands.Result{Text: commands.MessageReadProblem}
	} else {
		result, err = s.execute(ctx, c.session, ev.line)
	}

	if writeErr := s.write(c, result.Text); writeErr != nil {
		logger.Warn("Failed to write response", c.session.RemoteAddr, writeErr)
		if err != nil {
			return true, err
		}
		return s.disconnect(c), nil
	}
	if err != nil {
		return true, err
	}

	switch result.Action {
	case commands.ActionClose:
		return s.disconnect(c), nil
	case commands.ActionShutdown:
		others := len(s.conns) - 1
		stop := s.disconnect(c)
		if others == 0 {
			logger.Info("Shutdown requested, no other clients connected")
			return true, nil
		}
		return stop, nil
	}
	return false, nil
}

// execute - граница изоляции команды: ошибка разбора или паника
// превращаются в ответ клиенту
func (s *Server) execute(ctx context.Context, session *models.Session, line string) (result commands.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Errorw("Command panic", "addr", session.RemoteAddr, "input", line, "panic", r)
			result, err = commands.Result{Text: commands.MessageReadProblem}, nil
		}
	}()

	command, err := commands.Parse(line)
	if err != nil {
		logger.Warn("Failed to parse client input", session.RemoteAddr, err)
		return commands.Result{Text: commands.MessageReadProblem}, nil
	}
	logger.Debug("Command", session.RemoteAddr, command.Kind.String())
	return s.Executor.Execute(ctx, command, session)
}

func (s *Server) write(c *connection, text string) error {
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	if s.Config.WriteTimeout > 0 {
		if err := c.conn.SetWriteDeadline(time.Now().Add(s.Config.WriteTimeout)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(c.conn, text)
	return err
}

// disconnect - выход из аккаунта, закрытие сокета. Возвращает true,
// если клиентов не осталось и включено автоматическое завершение.
func (s *Server) disconnect(c *connection) bool {
	s.Executor.Disconnect(c.session)
	if err := c.conn.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		logger.Warn("Failed to close connection", c.session.RemoteAddr, err)
	}
	delete(s.conns, c.session.ID)
	s.active.Add(-1)
	logger.Infow("Client disconnected", "id", c.session.ID, "addr", c.session.RemoteAddr, "clients", len(s.conns))

	if len(s.conns) == 0 && s.Config.AutoShutdown {
		logger.Info("No clients connected. Server is stopping.")
		return true
	}
	return false
}

func (s *Server) acceptLoop() {
	var delay time.Duration
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			// временная ошибка accept, повтор с нарастающей паузой
			if delay == 0 {
				delay = 5 * time.Millisecond
			} else {
				delay = min(delay*2, time.Second)
			}
			logger.Warn("Accept error, retrying in", delay, err)
			select {
			case <-time.After(delay):
				continue
			case <-s.done:
				return
			}
		}
		delay = 0
		ev := event{kind: eventAccept, id: s.nextID.Add(1), conn: conn}
		if !s.send(ev) {
			conn.Close()
			return
		}
	}
}

// readLoop - чтение через буфер фиксированного размера, в цикл событий
// уходят только полные строки. Строка длиннее буфера отбрасывается целиком,
// неполный хвост при закрытии соединения не исполняется.
func (s *Server) readLoop(id uint64, conn net.Conn) {
	defer s.readers.Done()
	reader := bufio.NewReaderSize(conn, s.Config.BufferSize)
	tooLong := false
	for {
		chunk, err := reader.ReadSlice('\n')
		if errors.Is(err, bufio.ErrBufferFull) {
			tooLong = true
			continue
		}
		if err != nil {
			s.send(event{kind: eventClosed, id: id, err: err})
			return
		}

		ev := event{kind: eventData, id: id, tooLong: tooLong}
		if !tooLong {
			line := chunk[:len(chunk)-1]
			ev.line = string(bytes.TrimSuffix(line, []byte("\r")))
		}
		tooLong = false
		if !s.send(ev) {
			return
		}
	}
}

func (s *Server) send(ev event) bool {
	select {
	case s.events <- ev:
		return true
	case <-s.done:
		return false
	}
}

// stop - закрытие слушателя и всех оставшихся соединений
func (s *Server) stop() {
	s.once.Do(func() {
		close(s.done)
		if err := s.listener.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			logger.Warn("Failed to close listener", err)
		}
		for _, c := range s.conns {
			s.Executor.Disconnect(c.session)
			c.conn.Close()
			delete(s.conns, c.session.ID)
			s.active.Add(-1)
		}
		s.readers.Wait()
		logger.Info("Server stopped")
	})
}

// isDisconnect - EOF и сброс соединения считаются обычным отключением
func isDisconnect(err error) bool {
	return errors.Is(err, io.EOF) ||
		errors.Is(err, net.ErrClosed) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EPIPE)
}
