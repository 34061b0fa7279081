package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tedstrazimiri/droneclear/internal/model/entity"
	"github.com/tedstrazimiri/droneclear/internal/repository"
	"github.com/tedstrazimiri/droneclear/internal/service"
)

var seedGuidesCmd = &cobra.Command{
	Use:   "seed-guides",
	Short: "Create or refresh the sample 5-inch freestyle build guide",
	RunE:  runSeedGuides,
}

func sampleGuide() service.GuideInput {
	return service.GuideInput{
		PID:  "BG-5IN-FREE-01",
		Name: "5-inch Freestyle Quad Build",
		Description: "Complete assembly guide for a 5-inch freestyle FPV quadcopter. " +
			"Covers frame build-up through Betaflight configuration and final inspection.",
		Difficulty:           entity.DifficultyIntermediate,
		EstimatedTimeMinutes: 180,
		DroneClass:           "5inch",
		RequiredTools: []string{
			"Soldering iron (60W+)",
			"Solder (60/40 or 63/37)",
			"Hex driver set (1.5, 2.0, 2.5 mm)",
			"Wire strippers / flush cutters",
			"Heat shrink tubing",
			"Zip ties",
			"Double-sided tape / mounting pads",
			"Loctite (blue / medium)",
			"Multimeter",
		},
		Settings: map[string]interface{}{},
		Steps: []service.StepInput{
			{
				Order: 1,
				Title: "Frame Assembly",
				Description: "Unbox the frame kit and verify all hardware is present. " +
					"Assemble the bottom plate, arms, and standoffs. " +
					"Use Loctite on all bolts that will be exposed to vibration.",
				StepType:             entity.StepTypeAssembly,
				EstimatedTimeMinutes: 20,
				RequiredComponents:   []string{"FRM-0001"},
			},
			{
				Order: 2,
				Title: "Motor Mounting",
				Description: "Mount all four motors to the arms using the supplied hardware. " +
					"Pay attention to motor rotation direction: CW on rear-left and front-right, " +
					"CCW on front-left and rear-right (props-in or props-out per your preference). " +
					"Do not over-torque the screws; check motor bell spins freely.",
				StepType:             entity.StepTypeAssembly,
				EstimatedTimeMinutes: 15,
				RequiredComponents:   []string{"MTR-0001"},
			},
			{
				Order: 3,
				Title: "ESC Soldering",
				Description: "Solder motor wires to the 4-in-1 ESC. Match the motor order (M1-M4) " +
					"to the ESC pads. Tin all pads before soldering. " +
					"Keep solder joints clean and avoid cold solder joints. " +
					"Verify no shorts with a multimeter before powering on.",
				SafetyWarning: "Ensure the battery is disconnected during all soldering work. " +
					"Use adequate ventilation, solder fumes are harmful.",
				StepType:             entity.StepTypeSoldering,
				EstimatedTimeMinutes: 25,
				RequiredComponents:   []string{"ESC-0001"},
			},
			{
				Order: 4,
				Title: "Flight Controller Stack",
				Description: "Mount the ESC onto the frame standoffs, then place soft-mount grommets " +
					"and install the flight controller on top. Connect the ESC ribbon cable " +
					"or solder the signal wires. Verify the FC orientation arrow matches " +
					"your intended forward direction.",
				StepType:             entity.StepTypeAssembly,
				EstimatedTimeMinutes: 15,
				RequiredComponents:   []string{"FC-0001"},
			},
			{
				Order: 5,
				Title: "Receiver Wiring",
				Description: "Solder the receiver (RX) to the flight controller UART pads. " +
					"Typical wiring: RX pad on FC to TX on receiver, TX pad on FC to RX on receiver. " +
					"Power the receiver from a 5V pad. Secure the antenna with a zip tie " +
					"away from the ESC and VTX.",
				SafetyWarning:        "Double-check UART assignment in Betaflight before powering up.",
				StepType:             entity.StepTypeSoldering,
				EstimatedTimeMinutes: 15,
				RequiredComponents:   []string{"RX-0001"},
			},
			{
				Order: 6,
				Title: "VTX Installation",
				Description: "Mount the video transmitter on the stack or to the frame with double-sided tape. " +
					"Solder the VTX to the designated UART and power pads on the FC. " +
					"Route the antenna pigtail to the rear of the frame. " +
					"Never power on the VTX without an antenna attached.",
				SafetyWarning:        "Never power VTX without antenna, it will burn out the output stage.",
				StepType:             entity.StepTypeSoldering,
				EstimatedTimeMinutes: 15,
				RequiredComponents:   []string{"VTX-0001"},
			},
			{
				Order: 7,
				Title: "Camera Mounting",
				Description: "Install the FPV camera into the frame's camera mount. " +
					"Solder camera power and video signal wires to the FC or VTX. " +
					"Adjust tilt angle to ~25-35 degrees for freestyle. " +
					"Secure excess wire with zip ties.",
				StepType:             entity.StepTypeAssembly,
				EstimatedTimeMinutes: 10,
				RequiredComponents:   []string{"CAM-0001"},
			},
			{
				Order: 8,
				Title: "3D-Printed Accessories",
				Description: "Print and install any 3D-printed parts such as antenna mounts, " +
					"camera protectors, or GoPro mounts. Use TPU for parts that need flex " +
					"and impact resistance. PETG or ABS for rigid mounts.",
				StepType:             entity.StepType3DPrint,
				EstimatedTimeMinutes: 10,
			},
			{
				Order: 9,
				Title: "Betaflight Flash & Tune",
				Description: "Connect the FC via USB. Flash the latest Betaflight firmware. " +
					"Apply the CLI dump below as a starting tune, then verify:\n" +
					"- Motor order and direction in Motors tab\n" +
					"- Receiver channels in Receiver tab\n" +
					"- VTX table and power settings\n" +
					"- Modes (Arm, Angle, Beeper, etc.)\n" +
					"- OSD layout",
				BetaflightCLI: "# Betaflight 4.4+ starting tune for 5\" freestyle\n" +
					"set motor_pwm_protocol = DSHOT600\n" +
					"set dshot_bidir = ON\n" +
					"set pid_process_denom = 2\n" +
					"set simplified_master_multiplier = 120\n" +
					"set simplified_i_gain = 80\n" +
					"set simplified_d_gain = 100\n" +
					"set simplified_dmax_gain = 0\n" +
					"set simplified_feedforward_gain = 100\n" +
					"set simplified_pitch_d_gain = 105\n" +
					"set simplified_pitch_pi_gain = 105\n" +
					"profile 0\n" +
					"simplified_tuning apply\n" +
					"set iterm_relax_cutoff = 15\n" +
					"save\n",
				StepType:             entity.StepTypeFirmware,
				EstimatedTimeMinutes: 30,
			},
			{
				Order: 10,
				Title: "Final Inspection",
				Description: "Perform a full pre-flight check:\n" +
					"1. Wiggle test: tug all solder joints and connectors\n" +
					"2. Prop-off motor spin test: verify correct direction and smooth operation\n" +
					"3. Failsafe test: confirm RX failsafe triggers disarm\n" +
					"4. Range check: walk 30m away, verify no signal loss\n" +
					"5. Visual inspection: no loose screws, no exposed wires, antenna secure\n" +
					"6. Balance check: CG should be near the centre of the frame\n\n" +
					"Mount propellers only after all electronic checks pass.",
				SafetyWarning: "Do NOT install propellers until all electronic checks are complete. " +
					"Spinning props can cause serious injury.",
				StepType:             entity.StepTypeInspection,
				EstimatedTimeMinutes: 15,
				RequiredComponents:   []string{"PRP-0001"},
			},
		},
	}
}

func runSeedGuides(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	ctx := context.Background()

	input := sampleGuide()

	_, err = e.services.Guide.Get(ctx, input.PID)
	switch {
	case err == nil:
		guide, err := e.services.Guide.Update(ctx, input.PID, input)
		if err != nil {
			return err
		}
		fmt.Printf("Updated guide: %s (%s), %d steps\n", guide.Name, guide.PID, len(guide.Steps))
	case errors.Is(err, repository.ErrNotFound):
		guide, err := e.services.Guide.Create(ctx, input)
		if err != nil {
			return err
		}
		fmt.Printf("Created guide: %s (%s), %d steps\n", guide.Name, guide.PID, len(guide.Steps))
	default:
		return err
	}
	return nil
}
