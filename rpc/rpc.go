package rpc

import (
	"net"
	"net/rpc"

	"github.com/girify/streetquiz/logger"
	"github.com/girify/streetquiz/models"
	"github.com/girify/streetquiz/services"
)

// Server manages the RPC listener.
type Server struct {
	listener net.Listener
	address  string
}

// NewServer creates a new RPC server. Services are registered by the caller
// through net/rpc before Start.
func NewServer(addr string) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Server{
		listener: listener,
		address:  addr,
	}, nil
}

// Start begins listening for RPC requests.
func (s *Server) Start() {
	logger.Log.Infof("RPC server listening on %s", s.address)
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if _, ok := err.(*net.OpError); ok {
				logger.Log.Info("RPC server listener closed.")
				return
			}
			logger.Log.Errorf("RPC server accept error: %v", err)
			continue
		}
		go rpc.ServeConn(conn)
	}
}

// Stop closes the RPC listener.
func (s *Server) Stop() {
	if s.listener != nil {
		logger.Log.Info("Stopping RPC server.")
		s.listener.Close()
	}
}

// QuizService exposes leaderboard and player queries over net/rpc. Methods
// follow the net/rpc signature: exported method, exported args, pointer
// reply, error return.
type QuizService struct {
	leaderboard *services.LeaderboardService
}

func NewQuizService(leaderboard *services.LeaderboardService) *QuizService {
	return &QuizService{leaderboard: leaderboard}
}

type LeaderboardArgs struct {
	Period string
	Limit  int
}

type LeaderboardReply struct {
	Results []models.GameResultModel
}

func (qs *QuizService) Leaderboard(args *LeaderboardArgs, reply *LeaderboardReply) error {
	results, err := qs.leaderboard.TopScores(args.Period, args.Limit)
	if err != nil {
		return err
	}
	reply.Results = results
	return nil
}

type PlayerSummaryArgs struct {
	UserID string
}

type PlayerSummaryReply struct {
	Stats  *models.PlayerStats
	Recent []models.GameResultModel
}

func (qs *QuizService) PlayerSummary(args *PlayerSummaryArgs, reply *PlayerSummaryReply) error {
	stats, recent, err := qs.leaderboard.PlayerSummary(args.UserID)
	if err != nil {
		return err
	}
	reply.Stats = stats
	reply.Recent = recent
	return nil
}
