// Package autodrive provides two interchangeable steering engines for a car
// driving through a sequence of goals: a hand-tuned fuzzy-logic controller and a
// three layer perceptron trained by backpropagation to imitate it.
//
// The module is split in three packages:
//
//   - fuzzy maps seven sensor readings to a steering and acceleration pair, and
//     defines how readings and commands are encoded for the network.
//   - ann holds the perceptron, training sets, synthetic pattern generation and
//     resumable training and checking tasks.
//   - drive turns raw car state into readings and either engine's output into a
//     clamped Command, and records live fuzzy driving as training data.
//
// Basic usage:
//
//	// Load configuration
//	config, err := ann.LoadConfig("path/to/config.ini")
//	if err != nil {
//		log.Fatalf("Error loading config: %v", err)
//	}
//
//	// Label random readings with the fuzzy controller
//	set := ann.NewTrainingSet(nil)
//	set.GenerateRandomPatterns(config.Generator.RandomPatterns, config.Generator.Ranges(), config.Fuzzy)
//
//	// Train, printing progress at every checkpoint
//	net, err := ann.NewNetwork(config)
//	if err != nil {
//		log.Fatalf("Error creating network: %v", err)
//	}
//	task, err := net.TrainOnSet(ctx, set)
//	if err != nil {
//		log.Fatalf("Error starting training: %v", err)
//	}
//	for cp := range task.Steps() {
//		fmt.Println(cp.Message)
//	}
//
//	// Drive with the trained network
//	driver, err := drive.NewNeuralDriver(net)
//	cmd, err := driver.Decide(sensors)
//
// Training runs on the caller's goroutine: nothing happens between two
// checkpoints unless the caller asks for the next one, and stopping early keeps
// every weight update made so far.
//
// See the examples directory for complete programs.
package autodrive
