package main

import (
	"fmt"
	"net/http"

	"github.com/jonboulle/clockwork"
	"github.com/shiftledger/shiftledger-backend-go/internal/config"
	appHTTP "github.com/shiftledger/shiftledger-backend-go/internal/handler/http"
	"github.com/shiftledger/shiftledger-backend-go/internal/pkg/database"
	"github.com/shiftledger/shiftledger-backend-go/internal/pkg/jwt"
	"github.com/shiftledger/shiftledger-backend-go/internal/pkg/xrpl"
	"github.com/shiftledger/shiftledger-backend-go/internal/repository/postgresql"
	attendanceService "github.com/shiftledger/shiftledger-backend-go/internal/service/attendance"
	employeeService "github.com/shiftledger/shiftledger-backend-go/internal/service/employee"
	payrollService "github.com/shiftledger/shiftledger-backend-go/internal/service/payroll"
	timerService "github.com/shiftledger/shiftledger-backend-go/internal/service/timer"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	recordRepo := postgresql.NewAttendanceRecordRepository(db)
	eventRepo := postgresql.NewTimerEventRepository(db)
	correctionRepo := postgresql.NewCorrectionRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	ledger := xrpl.NewClient(xrpl.Config{
		RPCURL:  cfg.XRPL.RPCURL,
		Account: cfg.XRPL.Account,
		Secret:  cfg.XRPL.Secret,
		Timeout: cfg.XRPL.Timeout,
	})
	clock := clockwork.NewRealClock()

	timerSvc := timerService.NewTimerService(db, eventRepo, correctionRepo, recordRepo, clock)
	approvalSvc := attendanceService.NewApprovalService(recordRepo, clock)
	payrollSvc := payrollService.NewPayrollService(payrollRepo, employeeRepo, ledger, clock, payrollService.Config{
		SourceAddress: cfg.XRPL.Account,
		ChunkSize:     cfg.Disbursement.ChunkSize,
		ChunkPause:    cfg.Disbursement.ChunkPause,
		PollAttempts:  cfg.Disbursement.PollAttempts,
		PollInterval:  cfg.Disbursement.PollInterval,
	})
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, ledger)

	timerHandler := appHTTP.NewTimerHandler(timerSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(approvalSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)

	router := appHTTP.NewRouter(
		JWTService,
		timerHandler,
		attendanceHandler,
		payrollHandler,
		employeeHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
